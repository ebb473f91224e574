package settings

import (
	"fmt"
	"io"

	"github.com/ordishs/gocore"
	"github.com/stycoin/stynode/settings"
)

// CmdSettings prints the gocore configuration statistics followed by the
// values stynode resolved from them.
func CmdSettings(w io.Writer, tSettings *settings.Settings, version string, commit string) {
	stats := gocore.Config().Stats()
	_, _ = fmt.Fprintf(w, "STATS\n%s\nVERSION\n-------\n%s (%s)\n\n", stats, version, commit)

	network := tSettings.Network

	if selected, err := tSettings.SelectedNetwork(); err == nil {
		network = selected.String()
	}

	_, _ = fmt.Fprintf(w, "RESOLVED\n--------\nnetwork:        %s\ndataFolder:     %s\nlogLevel:       %s\nlogger:         %s\nprettyLogs:     %t\ngenesis_search: %t\n",
		network, tSettings.DataFolder, tSettings.Log.Level, tSettings.Log.LoggerType, tSettings.Log.PrettyLogs, tSettings.Genesis.Search)
}
