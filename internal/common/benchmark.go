package common

import (
	"time"

	"go.uber.org/zap"

	"alpenworks.io/resort-services/internal/log"
)

type Benchmarker struct {
	start time.Time
	label string
}

func RuntimeBenchmark[T any](label string, functionUnderTest func() (T, error)) (T, error) {
	start := time.Now()
	result, err := functionUnderTest()
	log.Logger.Info("benchmark", zap.String("label", label), zap.Duration("elapsed", time.Since(start)))
	return result, err
}

func NewBenchmarker(label string) *Benchmarker {
	return &Benchmarker{time.Now(), label}
}

func (benchmarker *Benchmarker) Close() {
	log.Logger.Info("benchmark",
		zap.String("label", benchmarker.label),
		zap.Duration("elapsed", time.Since(benchmarker.start)))
}
