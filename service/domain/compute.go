package domain

import "time"

const (
	// MaxComputeTasks é o teto de subtarefas por chamada de Compute.
	MaxComputeTasks     = 32
	// DefaultComputeTasks é usado quando o chamador não informa n.
	DefaultComputeTasks = 5

	ComputeBase = 50 * time.Millisecond
	ComputeStep = 30 * time.Millisecond
)

// ComputeResult é o que cada subtarefa devolve.
// O triplo (Index, Value, DurationMS) é determinístico dado o índice;
// só a ordem de chegada varia entre execuções.
type ComputeResult struct {
	Index      uint   `json:"index"`
	Value      uint64 `json:"value"`
	DurationMS uint64 `json:"ms"`
}

// NewComputeResult deriva o resultado de um índice: value = i*i, ms = 50 + i*30.
func NewComputeResult(index uint) ComputeResult {
	return ComputeResult{
		Index:      index,
		Value:      uint64(index) * uint64(index),
		DurationMS: uint64((ComputeBase + time.Duration(index)*ComputeStep).Milliseconds()),
	}
}

// Duration é a latência simulada da subtarefa.
func (r ComputeResult) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}
