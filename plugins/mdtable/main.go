package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/hashicorp/go-plugin"

	importerrpc "flipdeck/internal/modules/importer/adapter/out/rpc"
)

const (
	pluginName    = "mdtable"
	pluginVersion = "1.0.0"
)

var formats = []string{"mdtable", "md"}

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *importerrpc.Empty) (*importerrpc.Metadata, error) {
	return &importerrpc.Metadata{Name: pluginName, Version: pluginVersion, Formats: formats}, nil
}

func (s *server) Parse(_ context.Context, in *importerrpc.ParseRequest) (*importerrpc.ParseResponse, error) {
	if !slices.Contains(formats, in.Format) {
		return nil, fmt.Errorf("unsupported format: %s", in.Format)
	}
	return &importerrpc.ParseResponse{Cards: parseTable(in.Raw)}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: importerrpc.HandshakeConfig,
		Plugins:         importerrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
