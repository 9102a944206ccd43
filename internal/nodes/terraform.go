package nodes

import "sync"

// TerraformController is a Controller backed by a Terraform-managed set of
// libvirt machines. It records the download path chosen by the entity so the
// harness can attach the image to the machines afterwards.
type TerraformController struct {
	tfFolder string

	mu           sync.Mutex
	downloadPath string
}

var _ Controller = (*TerraformController)(nil)

// NewTerraformController creates a controller rooted at the given Terraform
// working directory.
func NewTerraformController(tfFolder string) *TerraformController {
	return &TerraformController{tfFolder: tfFolder}
}

func (c *TerraformController) SetDownloadPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.downloadPath = path
}

// DownloadPath returns the last download path the entity announced.
func (c *TerraformController) DownloadPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.downloadPath
}

func (c *TerraformController) TerraformFolder() string {
	return c.tfFolder
}
