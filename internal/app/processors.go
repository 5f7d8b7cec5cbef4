package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hpusset/ELRI-sub001/internal/domain/processing"
	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/domain/tm"

	"github.com/segmentio/encoding/json"
)

// Processing service names
const (
	ServiceMetadataJSON = "metadata-json"
	ServiceXMLValidate  = "xml-validate"
	ServiceTMXIngest    = "tmx-ingest"
)

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

type metadataJSONProcessor struct {
	codec resources.MetadataCodec
}

// NewMetadataJSONProcessor converts metadata documents to their JSON representation
func NewMetadataJSONProcessor(codec resources.MetadataCodec) processing.Processor {
	return &metadataJSONProcessor{codec: codec}
}

func (p *metadataJSONProcessor) Info() processing.ServiceInfo {
	return processing.ServiceInfo{
		Name:            ServiceMetadataJSON,
		Description:     "Convert an XML metadata record to JSON",
		AcceptsResource: true,
		AcceptsUpload:   true,
	}
}

func (p *metadataJSONProcessor) ResultName(inputName string) string {
	return stem(inputName) + ".json"
}

func (p *metadataJSONProcessor) Process(_ context.Context, in *processing.Input, out io.Writer) (string, error) {
	doc, err := p.codec.XMLToJSON(in.Data)
	if err != nil {
		return "", err
	}
	if _, err := out.Write(doc); err != nil {
		return "", fmt.Errorf("failed to write JSON: %w", err)
	}
	return fmt.Sprintf("converted %s to JSON", in.Name), nil
}

type xmlValidateProcessor struct {
	codec resources.MetadataCodec
}

// NewXMLValidateProcessor checks that a document is well-formed and returns it indented
func NewXMLValidateProcessor(codec resources.MetadataCodec) processing.Processor {
	return &xmlValidateProcessor{codec: codec}
}

func (p *xmlValidateProcessor) Info() processing.ServiceInfo {
	return processing.ServiceInfo{
		Name:            ServiceXMLValidate,
		Description:     "Check that an XML document is well-formed and indent it",
		AcceptsResource: true,
		AcceptsUpload:   true,
	}
}

func (p *xmlValidateProcessor) ResultName(inputName string) string {
	return stem(inputName) + ".formatted.xml"
}

func (p *xmlValidateProcessor) Process(_ context.Context, in *processing.Input, out io.Writer) (string, error) {
	doc, err := p.codec.Indent(in.Data)
	if err != nil {
		return "", err
	}
	if _, err := out.Write(doc); err != nil {
		return "", fmt.Errorf("failed to write XML: %w", err)
	}
	return fmt.Sprintf("%s is well-formed", in.Name), nil
}

type tmxIngestProcessor struct {
	tmService tm.TMService
}

// NewTMXIngestProcessor loads uploaded TMX files into the translation memory
func NewTMXIngestProcessor(tmService tm.TMService) processing.Processor {
	return &tmxIngestProcessor{tmService: tmService}
}

func (p *tmxIngestProcessor) Info() processing.ServiceInfo {
	return processing.ServiceInfo{
		Name:          ServiceTMXIngest,
		Description:   "Add a TMX file to the translation memory",
		AcceptsUpload: true,
	}
}

func (p *tmxIngestProcessor) ResultName(inputName string) string {
	return stem(inputName) + ".report.json"
}

func (p *tmxIngestProcessor) Process(ctx context.Context, in *processing.Input, out io.Writer) (string, error) {
	doc, err := p.tmService.AddDocument(ctx, in.Name, in.Data)
	if err != nil {
		return "", err
	}
	if err := json.NewEncoder(out).Encode(doc); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return fmt.Sprintf("added %d translation units in %s", doc.Units, strings.Join(doc.Languages, ", ")), nil
}
