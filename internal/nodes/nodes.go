// Package nodes exposes host-level context from the controller that owns the
// test machines: where discovery images should land on disk and where the
// Terraform state describing the machines lives.
package nodes

// Controller abstracts the machine controller backing a set of test nodes.
type Controller interface {
	// SetDownloadPath informs the controller where the discovery image for
	// its machines will be placed.
	SetDownloadPath(path string)

	// TerraformFolder returns the directory holding the Terraform state the
	// machines were created from.
	TerraformFolder() string
}

// Nodes is the entity-facing handle on a set of test machines.
type Nodes struct {
	controller Controller
}

// New wraps a controller.
func New(controller Controller) *Nodes {
	return &Nodes{controller: controller}
}

// Controller returns the underlying machine controller.
func (n *Nodes) Controller() Controller {
	return n.controller
}
