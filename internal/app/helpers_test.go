package app

import (
	"go.uber.org/zap"

	"portfolioadvisor/internal/advisor"
	"portfolioadvisor/internal/allocation"
)

func nopLogger() *zap.SugaredLogger { return zap.NewNop().Sugar() }

func advisorRequest() advisor.Request {
	return advisor.Request{
		UserID: "u1",
		Profile: allocation.Profile{
			Risk:             allocation.RiskLow,
			Instruments:      []allocation.Instrument{allocation.FD, allocation.Bank},
			InvestableAmount: 50000,
		},
	}
}
