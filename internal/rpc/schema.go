package rpc

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/jhump/protoreflect/desc/protoparse"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
)

const protoFile = "bantam.proto"

//go:embed bantam.proto
var protoSource string

// Fully-qualified names from bantam.proto.
const (
	ServiceName = "bantam.v1.Analyzer"
	CheckMethod = "/" + ServiceName + "/Check"
)

// schema holds the descriptors the service is built from.
type schema struct {
	file       protoreflect.FileDescriptor
	service    protoreflect.ServiceDescriptor
	request    protoreflect.MessageDescriptor
	response   protoreflect.MessageDescriptor
	diagnostic protoreflect.MessageDescriptor
	class      protoreflect.MessageDescriptor
}

var loadSchema = sync.OnceValues(parseSchema)

func parseSchema() (*schema, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{protoFile: protoSource}),
	}
	fds, err := parser.ParseFiles(protoFile)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", protoFile, err)
	}
	fd, err := protodesc.NewFile(fds[0].AsFileDescriptorProto(), new(protoregistry.Files))
	if err != nil {
		return nil, fmt.Errorf("building descriptors: %w", err)
	}

	s := &schema{
		file:       fd,
		service:    fd.Services().ByName("Analyzer"),
		request:    fd.Messages().ByName("CheckRequest"),
		response:   fd.Messages().ByName("CheckResponse"),
		diagnostic: fd.Messages().ByName("Diagnostic"),
		class:      fd.Messages().ByName("ClassEntry"),
	}
	if s.service == nil || s.request == nil || s.response == nil || s.diagnostic == nil || s.class == nil {
		return nil, fmt.Errorf("%s: missing Analyzer service or its messages", protoFile)
	}
	return s, nil
}

func field(md protoreflect.MessageDescriptor, name protoreflect.Name) protoreflect.FieldDescriptor {
	fd := md.Fields().ByName(name)
	if fd == nil {
		panic(fmt.Sprintf("rpc: %s has no field %s", md.FullName(), name))
	}
	return fd
}
