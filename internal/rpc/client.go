package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/funvibe/bantam/internal/pipeline"
	"github.com/funvibe/bantam/internal/report"
)

// CheckResult is the decoded CheckResponse.
type CheckResult struct {
	RunID       string
	OK          bool
	Diagnostics []report.Diagnostic
	Classes     []string
	Hierarchy   []report.Class
}

// Client calls a remote Analyzer service.
type Client struct {
	conn   grpc.ClientConnInterface
	schema *schema
}

// NewClient wraps an established connection.
func NewClient(conn grpc.ClientConnInterface) (*Client, error) {
	sc, err := loadSchema()
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, schema: sc}, nil
}

// Check sends the AST documents of one program for analysis.
func (c *Client) Check(ctx context.Context, sources []pipeline.Source, strict bool) (*CheckResult, error) {
	md := c.schema.request
	req := dynamicpb.NewMessage(md)
	documents := req.Mutable(field(md, "documents")).List()
	filenames := req.Mutable(field(md, "filenames")).List()
	for _, src := range sources {
		documents.Append(protoreflect.ValueOfString(string(src.Data)))
		filenames.Append(protoreflect.ValueOfString(src.Name))
	}
	req.Set(field(md, "strict_assignment"), protoreflect.ValueOfBool(strict))

	resp := dynamicpb.NewMessage(c.schema.response)
	if err := c.conn.Invoke(ctx, CheckMethod, req, resp); err != nil {
		return nil, err
	}
	return c.result(resp), nil
}

func (c *Client) result(resp *dynamicpb.Message) *CheckResult {
	md := c.schema.response
	res := &CheckResult{
		RunID: resp.Get(field(md, "run_id")).String(),
		OK:    resp.Get(field(md, "ok")).Bool(),
	}

	dmd := c.schema.diagnostic
	diags := resp.Get(field(md, "diagnostics")).List()
	for i := 0; i < diags.Len(); i++ {
		m := diags.Get(i).Message()
		res.Diagnostics = append(res.Diagnostics, report.Diagnostic{
			Kind:    m.Get(field(dmd, "kind")).String(),
			Code:    m.Get(field(dmd, "code")).String(),
			File:    m.Get(field(dmd, "file")).String(),
			Line:    int(m.Get(field(dmd, "line")).Int()),
			Message: m.Get(field(dmd, "message")).String(),
			Text:    m.Get(field(dmd, "text")).String(),
		})
	}

	classes := resp.Get(field(md, "classes")).List()
	for i := 0; i < classes.Len(); i++ {
		res.Classes = append(res.Classes, classes.Get(i).String())
	}

	cmd := c.schema.class
	hierarchy := resp.Get(field(md, "hierarchy")).List()
	for i := 0; i < hierarchy.Len(); i++ {
		m := hierarchy.Get(i).Message()
		res.Hierarchy = append(res.Hierarchy, report.Class{
			Name:        m.Get(field(cmd, "name")).String(),
			Parent:      m.Get(field(cmd, "parent")).String(),
			Depth:       int(m.Get(field(cmd, "depth")).Int()),
			Builtin:     m.Get(field(cmd, "builtin")).Bool(),
			Descendants: int(m.Get(field(cmd, "descendants")).Int()),
		})
	}
	return res
}
