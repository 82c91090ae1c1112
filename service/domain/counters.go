package domain

// Endpoint nomeia um contador de requisições.
type Endpoint string

const (
	EndpointRoot     Endpoint = "root"
	EndpointHealth   Endpoint = "health"
	EndpointSum      Endpoint = "sum"
	EndpointEcho     Endpoint = "echo"
	EndpointParallel Endpoint = "parallel"
)

// Endpoints lista o conjunto fixo de contadores, na ordem de exibição.
func Endpoints() []Endpoint {
	return []Endpoint{EndpointRoot, EndpointHealth, EndpointSum, EndpointEcho, EndpointParallel}
}

// Counters é o conjunto de contadores monotônicos por endpoint.
//
// Increment nunca falha; nomes desconhecidos são ignorados.
// Load lê um contador sem lock e sem garantia de ordem em relação aos demais.
type Counters interface {
	Increment(Endpoint)
	Load(Endpoint) uint64
}

// Report é a fotografia exposta em /metrics.
type Report struct {
	UptimeSeconds uint64            `json:"uptime_seconds"`
	Hits          map[string]uint64 `json:"hits"`
}
