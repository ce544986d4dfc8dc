package main

import (
	"portfolioadvisor/internal/advisor"
	"portfolioadvisor/internal/allocation"
)

func advisorRequest(userID, risk string, selected []allocation.Instrument, amount float64, rates allocation.Rates, location string) advisor.Request {
	return advisor.Request{
		UserID: userID,
		Profile: allocation.Profile{
			Risk:             allocation.RiskPreference(risk),
			Instruments:      selected,
			InvestableAmount: amount,
		},
		Rates:    rates,
		Location: location,
	}
}
