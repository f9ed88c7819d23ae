package termrender

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsColorEnabled decides whether styled output should carry color.
// Mode values: "auto" (default), "always", "never". In auto mode color
// requires a TTY writer and an unset NO_COLOR (https://no-color.org/).
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
