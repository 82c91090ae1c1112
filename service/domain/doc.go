// Package domain define os tipos e contratos do serviço de computação.
//
// Este pacote não depende de net/http nem de implementações concretas.
// Os casos de uso (application) e os adapters (infra, service) dependem dele,
// nunca o contrário.
package domain
