package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

var _ IOptions = (*WorkflowOptions)(nil)

const (
	ConflictPolicyReplace = "replace"
	ConflictPolicyReject  = "reject"
)

// WorkflowOptions configures modal handling.
type WorkflowOptions struct {
	// ConflictPolicy decides what opening a modal does while another is open.
	// "replace" discards the open modal, "reject" refuses the new one.
	ConflictPolicy string `json:"conflict-policy" mapstructure:"conflict-policy"`
}

func NewWorkflowOptions() *WorkflowOptions {
	return &WorkflowOptions{
		ConflictPolicy: ConflictPolicyReplace,
	}
}

func (o *WorkflowOptions) Validate() []error {
	if o == nil {
		return nil
	}

	switch o.ConflictPolicy {
	case ConflictPolicyReplace, ConflictPolicyReject:
		return nil
	default:
		return []error{fmt.Errorf("--workflow.conflict-policy must be %q or %q, got %q",
			ConflictPolicyReplace, ConflictPolicyReject, o.ConflictPolicy)}
	}
}

func (o *WorkflowOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.ConflictPolicy, "workflow.conflict-policy", o.ConflictPolicy,
		"What opening a modal does while another is open: 'replace' or 'reject'.")
}
