package pitos

import (
	"github.com/stretchr/testify/mock"
)

// MockDistributions is a testify double for ports.DistributionPort
type MockDistributions struct {
	mock.Mock
}

func (m *MockDistributions) BetaQuantile(p, alpha, beta float64) float64 {
	args := m.Called(p, alpha, beta)
	return args.Get(0).(float64)
}

func (m *MockDistributions) BetaCDF(x, alpha, beta float64) float64 {
	args := m.Called(x, alpha, beta)
	return args.Get(0).(float64)
}

func (m *MockDistributions) CauchySurvival(x float64) float64 {
	args := m.Called(x)
	return args.Get(0).(float64)
}
