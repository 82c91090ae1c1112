// Package service fornece o adapter HTTP (net/http) do serviço de computação.
//
// Visão geral (camadas):
//
//   - domain: contratos, tipos e a taxonomia de erros (sem dependência de net/http)
//   - application: casos de uso (soma, echo, fan-out/fan-in, relatório de métricas)
//   - infra: implementações concretas (contadores atômicos, semáforo, Prometheus, Redis)
//   - service (este pacote): rotas, handlers, middlewares e tradução de erro para status
//
// Fluxo de uma request:
//
//  1. Middlewares: request id + access log, tracing, CORS, compressão, timeout
//  2. O handler incrementa o contador do endpoint
//  3. Executa o caso de uso (parse, validação ou o motor de computação)
//  4. Responde JSON de sucesso ou passa o erro por RenderError (400/500)
package service
