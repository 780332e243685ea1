package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/goforj/godump"

	"github.com/flightdeck/companion/internal/geo"
	"github.com/flightdeck/companion/internal/launch"
	"github.com/flightdeck/companion/internal/selection"
	"github.com/flightdeck/companion/internal/surface"
	"github.com/flightdeck/companion/pkg/core"
)

var errUsage = errors.New(`usage: companion <command>

commands:
  colors [code...]           fill and outline colour per surface code
  favorites list             list favorite aircraft paths
  favorites toggle <path>... add or remove favorites
  path <procedure.json>      print a procedure as a web mercator WKT line
  project <lat,lon>          project a position to web mercator
  state                      dump the selection and launch state
  version                    print the version`)

func run(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch strings.ToLower(args[0]) {
	case "colors":
		return a.colors(args[1:])
	case "favorites":
		return a.favorites(ctx, args[1:])
	case "path":
		return a.path(args[1:])
	case "project":
		return a.project(args[1:])
	case "state":
		return a.state(ctx)
	case "version":
		fmt.Fprintf(a.out, "%s %s (built %s)\n", AppName, CurrentVersion, BuildDate)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%w", args[0], errUsage)
	}
}

func (a *app) colors(args []string) error {
	codes := surface.Codes()
	if len(args) > 0 {
		codes = nil
		for _, arg := range args {
			code, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid surface code %q: %w", arg, err)
			}
			codes = append(codes, code)
		}
	}

	resolver, err := surface.NewResolver(a.surfaceCfg.CacheSize)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tFILL\tOUTLINE\tKNOWN")
	for _, code := range codes {
		style := resolver.Style(code)
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\n", code, style.Fill, style.Outline, surface.Known(code))
	}
	return w.Flush()
}

func (a *app) favorites(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	backend, err := a.openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = backend.Close() }()

	ls := launch.New(ctx, launch.Dependencies{
		Backend:      backend,
		Logger:       a.logger,
		WriteTimeout: a.storageCfg.WriteTimeout,
	})

	switch args[0] {
	case "list":
	case "toggle":
		if len(args) < 2 {
			_ = ls.Close()
			return errUsage
		}
		for _, path := range args[1:] {
			ls.ToggleFavorite(path)
		}
	default:
		_ = ls.Close()
		return fmt.Errorf("unknown favorites command %q\n%w", args[0], errUsage)
	}

	if err := ls.Close(); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	for _, fav := range ls.Favorites() {
		fmt.Fprintln(a.out, fav)
	}
	return nil
}

func (a *app) path(args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var p core.Procedure
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("error decoding procedure: %w", err)
	}
	p.Normalize()

	wkt, err := geo.ProcedurePathWKT(&p)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\n%s\n", p.DisplayName(), wkt)
	if !p.FullyResolved() {
		a.logger.Warn("procedure has unresolved waypoints",
			"procedure", p.Name,
			"resolved", len(p.ResolvedWaypoints()),
			"total", len(p.Waypoints),
		)
	}
	return nil
}

func (a *app) project(args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	ll, err := geo.ParseLatLon(args[0])
	if err != nil {
		return err
	}
	point, err := geo.Coords3857From4326(ll.Longitude, ll.Latitude)
	if err != nil {
		return err
	}
	xy, _ := point.XY()
	fmt.Fprintf(a.out, "%.2f %.2f\n", xy.X, xy.Y)
	return nil
}

// state dumps a freshly started session: default selection plus the launch
// configuration with favorites read from storage.
func (a *app) state(ctx context.Context) error {
	backend, err := a.openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = backend.Close() }()

	ls := launch.New(ctx, launch.Dependencies{Backend: backend, Logger: a.logger})
	defer func() { _ = ls.Close() }()

	sel := selection.New(a.logger)

	godump.Fdump(a.out, struct {
		Selection selection.State
		Launch    launch.State
	}{
		Selection: sel.State(),
		Launch:    ls.State(),
	})
	return nil
}
