package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/cli/config"
	"github.com/secmon-lab/misemon/pkg/domain/interfaces"
	"github.com/secmon-lab/misemon/pkg/usecase"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// joinFlags combines multiple flag slices into one
func joinFlags(flags ...[]cli.Flag) []cli.Flag {
	var result []cli.Flag
	for _, f := range flags {
		result = append(result, f...)
	}
	return result
}

func formatFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "format",
		Aliases:     []string{"f"},
		Usage:       "Output format (json, yaml)",
		Value:       formatJSON,
		Destination: dst,
		Validator: func(v string) error {
			if v != formatJSON && v != formatYAML {
				return goerr.New("invalid output format", goerr.V("format", v))
			}
			return nil
		},
	}
}

// writeOutput renders v to w in the given format
func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return goerr.Wrap(err, "failed to encode YAML output")
		}
		return enc.Close()

	case formatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return goerr.Wrap(err, "failed to encode JSON output")
		}
		return nil
	}

	return goerr.New("invalid output format", goerr.V("format", format))
}

// newAlertUseCase wires the advisory use case from configuration. The
// returned store must be closed by the caller.
func newAlertUseCase(ctx context.Context, client interfaces.AirKoreaClient, storageCfg *config.Storage, cacheCfg *config.Cache) (*usecase.Alert, interfaces.KVStore, error) {
	loc, err := cacheCfg.TimeLocation()
	if err != nil {
		return nil, nil, err
	}

	kv, err := storageCfg.Configure(ctx)
	if err != nil {
		return nil, nil, err
	}

	cache, err := cacheCfg.Configure(kv)
	if err != nil {
		_ = kv.Close()
		return nil, nil, err
	}

	return usecase.NewAlert(client, cache, usecase.WithLocation(loc)), kv, nil
}
