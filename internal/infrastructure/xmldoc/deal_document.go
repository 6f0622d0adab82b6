// Package xmldoc genera el documento XML de intercambio de un trato (etree).
package xmldoc

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/Invex-api/internal/application/deal"
	"github.com/jhoicas/Invex-api/internal/application/dto"
)

// Namespace del documento de intercambio.
const Namespace = "urn:invex:deal:1.0"

var _ deal.ReceiptRenderer = (*DealDocumentRenderer)(nil)

// DealDocumentRenderer implementa deal.ReceiptRenderer serializando el detalle del trato a XML.
type DealDocumentRenderer struct{}

// NewDealDocumentRenderer construye el renderer.
func NewDealDocumentRenderer() *DealDocumentRenderer { return &DealDocumentRenderer{} }

func (r *DealDocumentRenderer) ContentType() string { return "application/xml" }
func (r *DealDocumentRenderer) Extension() string   { return "xml" }

// Render arma <Deal> con cabecera, contrapartes y líneas.
func (r *DealDocumentRenderer) Render(_ context.Context, detail *dto.DealDetailResponse) ([]byte, error) {
	g := detail.General

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Deal")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("id", g.DealID)
	root.CreateAttr("kind", g.Kind)

	root.CreateElement("IssueDate").SetText(g.Date.UTC().Format(time.RFC3339))

	company := root.CreateElement("Company")
	company.CreateAttr("type", g.CompanyType)
	company.CreateElement("Name").SetText(g.CompanyName)

	wh := root.CreateElement("Warehouse")
	wh.CreateElement("Name").SetText(g.Warehouse)
	wh.CreateElement("Governorate").SetText(g.Governorate)
	wh.CreateElement("City").SetText(g.City)

	root.CreateElement("Vendor").CreateElement("Name").SetText(g.VendorName)

	lines := root.CreateElement("Lines")
	for _, it := range detail.Items {
		l := lines.CreateElement("Line")
		l.CreateAttr("no", strconv.Itoa(it.LineNo))
		l.CreateElement("Item").SetText(it.Name)
		l.CreateElement("Category").SetText(it.Category)
		l.CreateElement("Quantity").SetText(strconv.FormatInt(it.Quantity, 10))
		l.CreateElement("UnitPrice").SetText(it.UnitPrice.StringFixed(2))
		l.CreateElement("Subtotal").SetText(it.Subtotal.StringFixed(2))
		l.CreateElement("StockAfter").SetText(strconv.FormatInt(it.StockAfter, 10))
	}

	root.CreateElement("TotalCost").SetText(g.TotalCost.StringFixed(2))

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("xml: serializar trato: %w", err)
	}
	return out.Bytes(), nil
}
