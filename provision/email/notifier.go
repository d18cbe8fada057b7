// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/idrelay/idrelay/provision"
	"github.com/idrelay/idrelay/transform"
)

var _ provision.Notifier = (*notifier)(nil)

type notifier struct {
	agent *Agent
	to    []string
}

// NewNotifier returns a provisioning notifier mailing conflict reports
// to the given recipients.
func NewNotifier(agent *Agent, to []string) provision.Notifier {
	return &notifier{agent: agent, to: to}
}

func (n *notifier) NotifyConflict(_ context.Context, conflict transform.Conflict) error {
	subject := fmt.Sprintf("Transformation conflict for group %q on %s", conflict.GroupName, conflict.ProviderID)

	names := make([]string, 0, len(conflict.Entitlements))
	for _, ent := range conflict.Entitlements {
		names = append(names, ent.Name)
	}
	content := fmt.Sprintf(
		"Tenant %s: group %q matched rules [%s] on provider %s with MANUAL_REVIEW resolution.\n"+
			"Candidate entitlements: %s.\n"+
			"Provisioning is paused for this group until the conflict is resolved.",
		conflict.TenantID, conflict.GroupName, strings.Join(conflict.RuleIDs, ", "),
		conflict.ProviderID, strings.Join(names, ", "),
	)

	return n.agent.Send(n.to, "", subject, "Provisioning conflict", content, "")
}
