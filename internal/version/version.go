// ABOUTME: Version constants
// ABOUTME: Product identification reported by the CLI
package version

const (
	Version      = "0.3.0"
	Product      = "beep"
	Manufacturer = "Sendspin"
)
