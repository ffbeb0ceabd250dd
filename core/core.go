package core

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"steamshelf/keyvalues"
	"steamshelf/platform"

	"github.com/spf13/afero"
)

type Options struct {
	List        bool   `short:"l" long:"list" description:"List installed games (the default action)"`
	Game        string `short:"g" long:"game" value-name:"APPID" description:"Show details for a single game"`
	State       string `short:"s" long:"state" description:"Only list games in this state: installed, update-pending, partial, unknown"`
	Sort        string `short:"o" long:"sort" description:"Sort order: name, appid or size. Defaults to the saved setting"`
	SetSort     string `long:"set-sort" description:"Save the default sort order and exit"`
	JSON        bool   `short:"j" long:"json" description:"Print JSON instead of a table"`
	ShowErrors  bool   `short:"e" long:"show-errors" description:"Also print skipped manifests and library registry problems"`
	Launch      string `long:"launch" value-name:"APPID" description:"Ask Steam to start a fully installed game"`
	Dump        string `long:"dump" value-name:"APPID" description:"Print the parsed appmanifest of a game"`
	SteamRoot   string `short:"r" long:"steam-root" description:"Use this Steam installation instead of searching for one"`
	Parallel    int    `short:"p" long:"parallel" default:"1" description:"Number of library folders to scan at once"`
	Settings    string `long:"settings" description:"Path to the settings file. Defaults to the user config dir"`
	Verbose     bool   `short:"v" long:"verbose" description:"Enable verbose logging"`
	LogLocation string `long:"log-location" description:"Specifies path to logfile. Defaults to User's Cache Dir / steamshelf.log"`
}

type Message struct {
	Finished bool
	Message  string
	Err      error
}

type ChannelProvider struct {
	Logs chan Message
}

func MakeDefaultChannelProvider() *ChannelProvider {
	return &ChannelProvider{
		Logs: make(chan Message, 100),
	}
}

func LogMessage(logs chan Message, format string, msg ...any) {
	logs <- Message{
		Message: fmt.Sprintf(format, msg...),
	}
}

// Launcher hands a launch URI to whatever starts programs on this system.
type Launcher interface {
	Launch(ctx context.Context, uri string) error
}

type SystemLauncher struct{}

func (SystemLauncher) Launch(ctx context.Context, uri string) error {
	cmd := platform.LaunchCommand(ctx, uri)
	InfoLogger.Println("Running Command ", cmd.Args)
	return cmd.Run()
}

// Environment is what RequestMainOperation needs from the outside world.
type Environment struct {
	Fs           afero.Fs
	Stdout       io.Writer
	Launcher     Launcher
	SettingsPath string
	// Candidates are the Steam roots tried when neither the options nor the
	// settings name one.
	Candidates []string
}

func DefaultEnvironment(stdout io.Writer) (*Environment, error) {
	settingsPath, err := GetDefaultSettingsPath()
	if err != nil {
		return nil, err
	}
	return &Environment{
		Fs:           afero.NewOsFs(),
		Stdout:       stdout,
		Launcher:     SystemLauncher{},
		SettingsPath: settingsPath,
		Candidates:   DefaultSteamRootCandidates(),
	}, nil
}

// RequestMainOperation runs the action selected by ops. Progress and
// warnings go to channels.Logs, which always receives a Finished message
// before the function returns.
func RequestMainOperation(ctx context.Context, env *Environment, ops *Options, channels *ChannelProvider) (err error) {
	logs := channels.Logs
	defer func() {
		logs <- Message{Finished: true, Err: err}
	}()

	settingsPath := env.SettingsPath
	if ops.Settings != "" {
		settingsPath = ops.Settings
	}
	settings := ReadUserSettingsOrDefault(settingsPath)

	if ops.SetSort != "" {
		order, err := ParseSortOrder(ops.SetSort)
		if err != nil {
			return err
		}
		settings.SortOrder = order
		if err := WriteUserSettings(settingsPath, settings); err != nil {
			return err
		}
		LogMessage(logs, "Default sort order set to %v", order)
		return nil
	}

	order := settings.SortOrder
	if ops.Sort != "" {
		if order, err = ParseSortOrder(ops.Sort); err != nil {
			return err
		}
	}

	var filter *InstallState
	if ops.State != "" {
		state, err := ParseInstallState(ops.State)
		if err != nil {
			return err
		}
		filter = &state
	}

	candidates := env.Candidates
	switch {
	case ops.SteamRoot != "":
		candidates = []string{ops.SteamRoot}
	case settings.SteamRoot != "":
		candidates = []string{settings.SteamRoot}
	}
	root, err := LocateSteamRoot(env.Fs, candidates)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	report := BuildCatalog(env.Fs, root, BuildOptions{Parallelism: ops.Parallel})

	switch {
	case ops.Launch != "":
		err = launchGame(ctx, env, report.Catalog, ops.Launch, logs)
	case ops.Dump != "":
		err = dumpManifest(env, report.Catalog, ops.Dump)
	case ops.Game != "":
		err = showGame(env, report.Catalog, ops.Game, ops.JSON)
	default:
		games := report.Catalog.Sorted(order)
		if filter != nil {
			games = filterGames(games, *filter)
		}
		if ops.JSON {
			err = writeJSON(env.Stdout, newListOutput(games, report, ops.ShowErrors))
		} else {
			err = writeGameTable(env.Stdout, games)
		}
	}
	if err != nil {
		return err
	}

	skipped := len(report.ManifestErrors)
	if report.RegistryErr != nil {
		skipped++
	}
	switch {
	case ops.ShowErrors && !ops.JSON:
		return writeDiagnostics(env.Stdout, report)
	case !ops.ShowErrors && skipped > 0:
		LogMessage(logs, "%d problem(s) while reading the Steam library; run with --show-errors for details", skipped)
	}
	return nil
}

func ConsoleLogger(input chan Message, out io.Writer) {
	for {
		result := <-input
		if result.Finished {
			break
		}

		if result.Err != nil {
			ErrorLogger.Println(result.Err)
			fmt.Fprintln(out, result.Err)
		} else {
			InfoLogger.Println(result.Message)
			fmt.Fprintln(out, result.Message)
		}
	}
}

func parseAppID(s string) (uint32, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid app id %q", s)
	}
	return uint32(id), nil
}

func lookupGame(c *Catalog, appID string) (*Game, error) {
	id, err := parseAppID(appID)
	if err != nil {
		return nil, err
	}
	g, ok := c.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("app %d is not installed in any Steam library", id)
	}
	return g, nil
}

func filterGames(games []*Game, state InstallState) []*Game {
	var out []*Game
	for _, g := range games {
		if g.State == state {
			out = append(out, g)
		}
	}
	return out
}

func launchGame(ctx context.Context, env *Environment, c *Catalog, appID string, logs chan Message) error {
	g, err := lookupGame(c, appID)
	if err != nil {
		return err
	}
	if !g.Launchable() {
		return fmt.Errorf("refusing to launch %v: install state is %v", g, g.State)
	}
	LogMessage(logs, "Launching %v", g)
	return env.Launcher.Launch(ctx, g.LaunchURI())
}

func dumpManifest(env *Environment, c *Catalog, appID string) error {
	g, err := lookupGame(c, appID)
	if err != nil {
		return err
	}
	tree, err := ReadManifestTree(env.Fs, g.ManifestPath)
	if err != nil {
		return err
	}
	return keyvalues.Encode(env.Stdout, tree)
}

func showGame(env *Environment, c *Catalog, appID string, asJSON bool) error {
	g, err := lookupGame(c, appID)
	if err != nil {
		return err
	}
	details := &gameDetails{Game: g}
	if details.Launchers, err = Launchers(env.Fs, g.InstallPath()); err != nil {
		ErrorLogger.Printf("listing launchers of %v: %v", g, err)
	}
	details.Platform = InferPlatform(details.Launchers)

	if asJSON {
		return writeJSON(env.Stdout, details)
	}
	return writeGameDetails(env.Stdout, details)
}
