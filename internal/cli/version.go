package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

// buildInfo holds the values stamped in via ldflags at release time.
type buildInfo struct {
	version string
	commit  string
	date    string
}

var build = buildInfo{version: "dev", commit: "none", date: "unknown"}

// SetVersionInfo records the build stamp (called from main).
func SetVersionInfo(version, commit, date string) {
	build = buildInfo{version: version, commit: commit, date: date}
}

// GetVersion returns the raw version string.
func GetVersion() string {
	return build.version
}

// formatVersion adds the v prefix for display. Dev builds pass through.
func formatVersion(v string) string {
	if v == "" || v == "dev" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of kiosk.`,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Println(build.version)
				return
			}
			fmt.Printf("kiosk %s\n", formatVersion(build.version))
			fmt.Printf("commit: %s\n", build.commit)
			fmt.Printf("built: %s\n", build.date)
			fmt.Printf("go: %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
}
