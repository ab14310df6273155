package reconcile

import (
	log "github.com/sirupsen/logrus"

	"github.com/dhcpops/scoperec/scopecfg"
)

// Validates each declaration and reconciles the valid ones against the
// server state behind the gateway, producing exactly one outcome per
// declaration in input order. Invalid declarations bypass the gateway
// entirely. A failure while processing one scope never prevents the
// processing of subsequent scopes. Scopes are deliberately processed
// sequentially: mutations stay ordered and simple for the server.
func Run(gateway ScopeGateway, declarations []scopecfg.ScopeDeclaration, dryRun bool) *RunReport {
	report := &RunReport{}
	for _, decl := range declarations {
		scope, violations := scopecfg.Validate(decl)
		if len(violations) > 0 {
			outcome := ScopeOutcome{
				Name:    decl.Name,
				Status:  StatusInvalid,
				Details: scopecfg.JoinErrors(violations),
			}
			log.WithFields(log.Fields{
				"scope":      decl.Name,
				"violations": len(violations),
			}).Warn("Scope declaration is invalid")
			report.record(outcome)
			continue
		}

		outcome := Apply(gateway, scope, dryRun)
		entry := log.WithFields(log.Fields{
			"scope":    outcome.Name,
			"scope_id": outcome.ScopeID,
			"status":   outcome.Status.String(),
		})
		if outcome.Status == StatusError {
			entry.Error(outcome.Details)
		} else {
			entry.Info(outcome.Details)
		}
		report.record(outcome)
	}
	return report
}
