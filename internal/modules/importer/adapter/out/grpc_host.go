package out

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	importerrpc "flipdeck/internal/modules/importer/adapter/out/rpc"
	"flipdeck/internal/modules/importer/domain"
	importerout "flipdeck/internal/modules/importer/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// GRPCHost starts one plugin process per call and kills it afterwards.
type GRPCHost struct {
	logger      hclog.Logger
	callTimeout time.Duration
}

type HostOption func(*GRPCHost)

func WithCallTimeout(d time.Duration) HostOption {
	return func(h *GRPCHost) {
		if d > 0 {
			h.callTimeout = d
		}
	}
}

func NewGRPCHost(logger hclog.Logger, opts ...HostOption) importerout.Host {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	h := &GRPCHost{logger: logger, callTimeout: defaultCallTimeout}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	_, err := h.GetMetadata(ctx, manifest)
	return err
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, h.callError(callCtx, manifest, "get metadata", err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Formats: meta.Formats}, nil
}

func (h *GRPCHost) Parse(ctx context.Context, manifest domain.Manifest, req domain.ParseRequest) ([]domain.Card, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx)
	defer cancel()
	response, err := client.Parse(callCtx, &importerrpc.ParseRequest{Format: req.Format, Raw: req.Raw})
	if err != nil {
		return nil, h.callError(callCtx, manifest, "parse", err)
	}
	cards := make([]domain.Card, 0, len(response.Cards))
	for _, c := range response.Cards {
		cards = append(cards, domain.Card{Front: c.Front, Back: c.Back})
	}
	h.logger.Debug("plugin parsed deck", "plugin", manifest.Name, "format", req.Format, "cards", len(cards))
	return cards, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest) (importerrpc.ImporterClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  importerrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          importerrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           h.logger.Named(manifest.Name),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(importerrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(importerrpc.ImporterClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, h.callTimeout)
}

func (h *GRPCHost) callError(callCtx context.Context, manifest domain.Manifest, op string, err error) error {
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s %s", domain.ErrPluginTimeout, manifest.Name, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}
