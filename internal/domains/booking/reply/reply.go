// Package reply reads the SMS a steward sends back to accept or decline the
// services of a booking, e.g. "CONFIRM V20240101-ABCD1234 WALK YES HOME NO".
package reply

import (
	"strings"

	communityModel "tourismrelay/internal/domains/community/model"
	"tourismrelay/shared/bookingcode"
	"tourismrelay/shared/failure"
)

const (
	KeywordConfirm = "CONFIRM"

	answerYes = "YES"
	answerNo  = "NO"
)

var aliases = map[string]string{
	"WALK":             communityModel.ServiceGuidedWalk,
	"GUIDED_WALK":      communityModel.ServiceGuidedWalk,
	"HOME":             communityModel.ServiceHomestay,
	"HOMESTAY":         communityModel.ServiceHomestay,
	"CULTURAL":         communityModel.ServiceCulturalEvening,
	"CULTURAL_EVENING": communityModel.ServiceCulturalEvening,
	"BREAKFAST":        communityModel.ServiceBushBreakfast,
	"BUSH_BREAKFAST":   communityModel.ServiceBushBreakfast,
	"RHINO":            communityModel.ServiceRhinoSanctuary,
	"RHINO_SANCTUARY":  communityModel.ServiceRhinoSanctuary,
	"BEADING":          communityModel.ServiceBeadingWorkshop,
	"BEADING_WORKSHOP": communityModel.ServiceBeadingWorkshop,
}

type Confirmation struct {
	Code string
	// Accepted holds the services answered YES, in catalog order.
	Accepted []string
	// Declined holds the services answered NO.
	Declined []string
}

// Parse is case-insensitive. Tokens it does not recognize are skipped, and a
// service mentioned twice keeps its last answer.
func Parse(message string) (Confirmation, error) {
	tokens := strings.Fields(strings.ToUpper(message))

	if len(tokens) == 0 || tokens[0] != KeywordConfirm {
		return Confirmation{}, failure.InvalidFormat("reply must start with CONFIRM") // nolint:wrapcheck
	}

	if len(tokens) < 2 || !bookingcode.Valid(tokens[1]) {
		return Confirmation{}, failure.InvalidFormat("reply must carry a booking code after CONFIRM") // nolint:wrapcheck
	}

	answers := map[string]bool{}

	for i := 2; i < len(tokens)-1; i++ {
		service, ok := aliases[tokens[i]]
		if !ok {
			continue
		}

		switch tokens[i+1] {
		case answerYes:
			answers[service] = true
		case answerNo:
			answers[service] = false
		default:
			continue
		}

		i++
	}

	res := Confirmation{Code: tokens[1], Accepted: []string{}, Declined: []string{}}

	for _, service := range communityModel.Services {
		accepted, answered := answers[service]
		if !answered {
			continue
		}

		if accepted {
			res.Accepted = append(res.Accepted, service)
		} else {
			res.Declined = append(res.Declined, service)
		}
	}

	return res, nil
}
