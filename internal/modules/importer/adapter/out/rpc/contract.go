package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "importer"
	serviceName       = "flipdeck.importer.v1.Importer"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodParse       = "/" + serviceName + "/Parse"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "FLIPDECK_PLUGIN",
	MagicCookieValue: "flipdeck-importer",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Formats []string `json:"formats"`
}

type Card struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type ParseRequest struct {
	Format string `json:"format"`
	Raw    string `json:"raw"`
}

type ParseResponse struct {
	Cards []Card `json:"cards"`
}

type ImporterServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Parse(ctx context.Context, in *ParseRequest) (*ParseResponse, error)
}

type ImporterClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Parse(ctx context.Context, in *ParseRequest) (*ParseResponse, error)
}

type importerClient struct {
	conn *grpc.ClientConn
}

func NewImporterClient(conn *grpc.ClientConn) ImporterClient {
	return &importerClient{conn: conn}
}

func (c *importerClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *importerClient) Parse(ctx context.Context, in *ParseRequest) (*ParseResponse, error) {
	out := &ParseResponse{}
	if err := c.conn.Invoke(ctx, methodParse, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

// unary adapts a typed handler to grpc.MethodDesc.
func unary[Req any, Resp any](fullMethod string, call func(context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*Req)
			if !ok {
				return nil, fmt.Errorf("invalid request type %T", req)
			}
			return call(ctx, typed)
		}
		return interceptor(ctx, in, info, handler)
	}
}

func RegisterImporterServer(server grpc.ServiceRegistrar, impl ImporterServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*ImporterServer)(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: "GetMetadata", Handler: unary(methodGetMetadata, impl.GetMetadata)},
			{MethodName: "Parse", Handler: unary(methodParse, impl.Parse)},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/importer-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl ImporterServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterImporterServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewImporterClient(conn), nil
}

func PluginMap(impl ImporterServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
