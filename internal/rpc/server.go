package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/tliron/commonlog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/funvibe/bantam/internal/analyzer"
	"github.com/funvibe/bantam/internal/archive"
	"github.com/funvibe/bantam/internal/pipeline"
	"github.com/funvibe/bantam/internal/report"
)

var log = commonlog.GetLogger("bantam.rpc")

// Server answers bantam.v1.Analyzer calls. Every call runs an independent
// analysis with its own diagnostic handler.
type Server struct {
	schema *schema
	store  *archive.Store
	grpc   *grpc.Server
}

// NewServer builds the service. store may be nil to disable archiving.
func NewServer(store *archive.Store, opts ...grpc.ServerOption) (*Server, error) {
	sc, err := loadSchema()
	if err != nil {
		return nil, err
	}
	s := &Server{schema: sc, store: store, grpc: grpc.NewServer(opts...)}
	s.grpc.RegisterService(s.serviceDesc(), s)
	return s, nil
}

func (s *Server) serviceDesc() *grpc.ServiceDesc {
	return &grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*interface{})(nil),
		Methods: []grpc.MethodDesc{{
			MethodName: "Check",
			Handler:    checkHandler,
		}},
		Streams:  []grpc.StreamDesc{},
		Metadata: s.schema.file.Path(),
	}
}

func checkHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	s := srv.(*Server)
	req := dynamicpb.NewMessage(s.schema.request)
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return s.Check(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CheckMethod}
	return interceptor(ctx, req, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.Check(ctx, req.(*dynamicpb.Message))
	})
}

// Check decodes the request documents into one program, analyzes it and
// returns the CheckResponse message.
func (s *Server) Check(ctx context.Context, req *dynamicpb.Message) (*dynamicpb.Message, error) {
	documents := req.Get(field(s.schema.request, "documents")).List()
	filenames := req.Get(field(s.schema.request, "filenames")).List()
	strict := req.Get(field(s.schema.request, "strict_assignment")).Bool()

	if documents.Len() == 0 {
		return nil, status.Error(codes.InvalidArgument, "no documents")
	}
	if filenames.Len() != 0 && filenames.Len() != documents.Len() {
		return nil, status.Errorf(codes.InvalidArgument, "%d filenames for %d documents", filenames.Len(), documents.Len())
	}

	sources := make([]pipeline.Source, documents.Len())
	names := make([]string, documents.Len())
	for i := range sources {
		name := "<rpc>"
		if filenames.Len() != 0 && filenames.Get(i).String() != "" {
			name = filenames.Get(i).String()
		}
		names[i] = name
		sources[i] = pipeline.Source{Name: name, Data: []byte(documents.Get(i).String())}
	}

	pctx, err := analyzer.CheckSources(sources, analyzer.Options{StrictAssignment: strict})
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	r := report.New(names, pctx.Root, pctx.Handler.Errors())
	log.Debugf("check %s: %s", r.RunID, r.Summary())
	if s.store != nil {
		if err := s.store.Save(ctx, r); err != nil {
			log.Errorf("archiving run %s: %s", r.RunID, err.Error())
		}
	}
	return s.response(r), nil
}

func (s *Server) response(r *report.Report) *dynamicpb.Message {
	md := s.schema.response
	resp := dynamicpb.NewMessage(md)
	resp.Set(field(md, "run_id"), protoreflect.ValueOfString(r.RunID))
	resp.Set(field(md, "ok"), protoreflect.ValueOfBool(r.OK))

	diags := resp.Mutable(field(md, "diagnostics")).List()
	for _, d := range r.Diagnostics {
		diags.Append(protoreflect.ValueOfMessage(s.diagnostic(d)))
	}
	classes := resp.Mutable(field(md, "classes")).List()
	hierarchy := resp.Mutable(field(md, "hierarchy")).List()
	for _, c := range r.Classes {
		classes.Append(protoreflect.ValueOfString(c.Name))
		hierarchy.Append(protoreflect.ValueOfMessage(s.class(c)))
	}
	return resp
}

func (s *Server) class(c report.Class) protoreflect.Message {
	md := s.schema.class
	m := dynamicpb.NewMessage(md)
	m.Set(field(md, "name"), protoreflect.ValueOfString(c.Name))
	m.Set(field(md, "parent"), protoreflect.ValueOfString(c.Parent))
	m.Set(field(md, "depth"), protoreflect.ValueOfInt32(int32(c.Depth)))
	m.Set(field(md, "builtin"), protoreflect.ValueOfBool(c.Builtin))
	m.Set(field(md, "descendants"), protoreflect.ValueOfInt32(int32(c.Descendants)))
	return m
}

func (s *Server) diagnostic(d report.Diagnostic) protoreflect.Message {
	md := s.schema.diagnostic
	m := dynamicpb.NewMessage(md)
	m.Set(field(md, "kind"), protoreflect.ValueOfString(d.Kind))
	m.Set(field(md, "code"), protoreflect.ValueOfString(d.Code))
	m.Set(field(md, "file"), protoreflect.ValueOfString(d.File))
	m.Set(field(md, "line"), protoreflect.ValueOfInt32(int32(d.Line)))
	m.Set(field(md, "message"), protoreflect.ValueOfString(d.Message))
	m.Set(field(md, "text"), protoreflect.ValueOfString(d.Text))
	return m
}

// Serve accepts connections on lis until Stop or GracefulStop.
func (s *Server) Serve(lis net.Listener) error {
	log.Infof("serving %s on %s", ServiceName, lis.Addr())
	return s.grpc.Serve(lis)
}

// ListenAndServe listens on addr and serves until ctx is done, then stops
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			log.Infof("shutting down")
			s.grpc.GracefulStop()
		case <-done:
		}
	}()

	if err := s.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// GracefulStop waits for in-flight calls, then stops the server.
func (s *Server) GracefulStop() {
	s.grpc.GracefulStop()
}

// Stop closes all connections immediately.
func (s *Server) Stop() {
	s.grpc.Stop()
}
