// Package application contém os casos de uso do serviço: soma de inteiros,
// validação do echo, o motor de fan-out/fan-in e o relatório de métricas.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: ParseSum("1,2,3") retorna 6; falhas saem como *domain.Error.
package application
