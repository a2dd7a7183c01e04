package pdf

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"yibyerm/internal/models"
)

const (
	defaultMargin = 15.0
	lineHeight    = 7.0
	// Item names longer than this are ellipsized in the table.
	maxNameRunes = 35

	notSpecified = "ไม่ระบุ"
)

var statusLabels = map[models.RequestStatus]string{
	models.RequestPending:   "รออนุมัติ",
	models.RequestApproved:  "อนุมัติแล้ว",
	models.RequestRejected:  "ไม่อนุมัติ",
	models.RequestIssued:    "เบิกจ่ายแล้ว",
	models.RequestCompleted: "เสร็จสิ้น",
	models.RequestCancelled: "ยกเลิก",
}

// Options control the page layout. Zero values mean A4 portrait with the
// default margin.
type Options struct {
	PageSize    string
	Orientation string
	Margin      float64
}

func (o *Options) withDefaults() Options {
	out := Options{PageSize: "A4", Orientation: "P", Margin: defaultMargin}
	if o == nil {
		return out
	}
	if o.PageSize != "" {
		out.PageSize = o.PageSize
	}
	if o.Orientation != "" {
		out.Orientation = o.Orientation
	}
	if o.Margin > 0 {
		out.Margin = o.Margin
	}
	return out
}

// Generator renders borrow-request receipts. A TTF with Thai glyphs is
// used when configured; otherwise the built-in font is a legible
// fallback for Latin content only.
type Generator struct {
	institution string
	fontFamily  string
	fontPath    string
}

func NewGenerator(cfg models.PDFConfig, log *zap.Logger) *Generator {
	g := &Generator{institution: cfg.Institution, fontFamily: "Helvetica"}
	if cfg.FontPath == "" {
		return g
	}
	if _, err := os.Stat(cfg.FontPath); err != nil {
		log.Warn("receipt font not found, using the built-in font; Thai text will not render",
			zap.String("font_path", cfg.FontPath), zap.Error(err))
		return g
	}
	g.fontFamily = "receipt"
	g.fontPath = cfg.FontPath
	return g
}

func (g *Generator) newDocument(opts Options) *fpdf.Fpdf {
	doc := fpdf.New(opts.Orientation, "mm", opts.PageSize, "")
	if g.fontPath != "" {
		doc.AddUTF8Font(g.fontFamily, "", g.fontPath)
		doc.AddUTF8Font(g.fontFamily, "B", g.fontPath)
	}
	doc.SetMargins(opts.Margin, opts.Margin, opts.Margin)
	doc.SetAutoPageBreak(false, opts.Margin)
	return doc
}

// GenerateRequestReceipt renders one request into a PDF and returns the
// document bytes with the download filename
// (คำขอเบิก_<requestNumber-or-id>_<epoch-ms>.pdf). Blocks are drawn top
// to bottom with a running cursor; content past the page bottom clips.
// Absent fields render as placeholders rather than failing.
func (g *Generator) GenerateRequestReceipt(req *models.BorrowRequest, opts *Options) ([]byte, string, error) {
	o := opts.withDefaults()
	doc := g.newDocument(o)
	doc.AddPage()

	pageW, _ := doc.GetPageSize()
	contentW := pageW - 2*o.Margin
	now := time.Now()

	// Header
	doc.SetFont(g.fontFamily, "B", 16)
	doc.CellFormat(contentW, 10, g.institution, "", 1, "C", false, 0, "")
	doc.SetFont(g.fontFamily, "B", 14)
	doc.CellFormat(contentW, 8, "ใบคำขอเบิกครุภัณฑ์", "", 1, "C", false, 0, "")
	doc.SetFont(g.fontFamily, "", 9)
	doc.CellFormat(contentW, 6, "พิมพ์เมื่อ "+now.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	doc.Ln(4)

	// Request info
	doc.SetFont(g.fontFamily, "", 11)
	g.infoLine(doc, "เลขที่คำขอ", orPlaceholder(req.RequestNumber))
	g.infoLine(doc, "ผู้ขอเบิก", orPlaceholder(req.UserName))
	g.infoLine(doc, "อีเมล", orPlaceholder(req.UserEmail))
	g.infoLine(doc, "หน่วยงาน", orPlaceholder(req.DepartmentName))
	g.infoLine(doc, "วันที่ยื่นคำขอ", req.CreatedAt.Format("02/01/2006 15:04"))
	g.infoLine(doc, "สถานะ", statusLabel(req.Status))
	g.infoLine(doc, "วัตถุประสงค์", orPlaceholder(req.Purpose))
	if req.Note != "" {
		g.infoLine(doc, "หมายเหตุ", req.Note)
	}
	if req.ReviewNote != "" {
		g.infoLine(doc, "หมายเหตุผู้อนุมัติ", req.ReviewNote)
	}
	doc.Ln(4)

	// Items table
	colIdx, colQty := 15.0, 25.0
	colCat := 50.0
	colName := contentW - colIdx - colCat - colQty

	doc.SetLineWidth(0.4)
	doc.Line(o.Margin, doc.GetY(), o.Margin+contentW, doc.GetY())
	doc.SetFont(g.fontFamily, "B", 11)
	doc.CellFormat(colIdx, lineHeight, "ลำดับ", "", 0, "C", false, 0, "")
	doc.CellFormat(colName, lineHeight, "รายการ", "", 0, "L", false, 0, "")
	doc.CellFormat(colCat, lineHeight, "หมวดหมู่", "", 0, "L", false, 0, "")
	doc.CellFormat(colQty, lineHeight, "จำนวน", "", 1, "R", false, 0, "")

	doc.SetFont(g.fontFamily, "", 11)
	totalQty := 0
	for i, item := range req.Items {
		doc.CellFormat(colIdx, lineHeight, fmt.Sprintf("%d", i+1), "", 0, "C", false, 0, "")
		doc.CellFormat(colName, lineHeight, Ellipsize(item.Name, maxNameRunes), "", 0, "L", false, 0, "")
		doc.CellFormat(colCat, lineHeight, orPlaceholder(item.Category), "", 0, "L", false, 0, "")
		doc.CellFormat(colQty, lineHeight, fmt.Sprintf("%d", item.Quantity), "", 1, "R", false, 0, "")
		totalQty += item.Quantity
	}
	doc.Line(o.Margin, doc.GetY(), o.Margin+contentW, doc.GetY())
	doc.Ln(2)

	// Summary
	doc.SetFont(g.fontFamily, "B", 11)
	doc.CellFormat(contentW, lineHeight, summaryLine(len(req.Items), totalQty),
		"", 1, "R", false, 0, "")
	doc.Ln(12)

	// Signature blocks, side by side
	half := contentW / 2
	sigY := doc.GetY()
	doc.SetFont(g.fontFamily, "", 11)

	doc.Line(o.Margin+10, sigY+14, o.Margin+half-10, sigY+14)
	doc.SetXY(o.Margin, sigY+15)
	doc.CellFormat(half, 6, "("+orPlaceholder(req.UserName)+")", "", 0, "C", false, 0, "")
	doc.SetXY(o.Margin, sigY+21)
	doc.CellFormat(half, 6, "ผู้ขอเบิก", "", 0, "C", false, 0, "")

	doc.Line(o.Margin+half+10, sigY+14, o.Margin+contentW-10, sigY+14)
	approver := notSpecified
	if req.ApproverName != nil && *req.ApproverName != "" {
		approver = *req.ApproverName
	}
	doc.SetXY(o.Margin+half, sigY+15)
	doc.CellFormat(half, 6, "("+approver+")", "", 0, "C", false, 0, "")
	doc.SetXY(o.Margin+half, sigY+21)
	doc.CellFormat(half, 6, "ผู้อนุมัติ", "", 0, "C", false, 0, "")
	if req.ApprovedAt != nil {
		doc.SetXY(o.Margin+half, sigY+27)
		doc.CellFormat(half, 6, "วันที่อนุมัติ "+req.ApprovedAt.Format("02/01/2006"), "", 0, "C", false, 0, "")
	}

	// Footer
	doc.SetY(-o.Margin - 10)
	doc.SetFont(g.fontFamily, "", 8)
	doc.CellFormat(contentW, 5, g.institution, "", 1, "C", false, 0, "")
	doc.CellFormat(contentW, 5, "สร้างเอกสารเมื่อ "+now.Format("02/01/2006 15:04:05"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("pdf render failed: %v", err)
	}
	return buf.Bytes(), ReceiptFilename(req, now), nil
}

func (g *Generator) infoLine(doc *fpdf.Fpdf, label, value string) {
	doc.SetFont(g.fontFamily, "B", 11)
	doc.CellFormat(40, lineHeight, label, "", 0, "L", false, 0, "")
	doc.SetFont(g.fontFamily, "", 11)
	doc.CellFormat(0, lineHeight, value, "", 1, "L", false, 0, "")
}

// ReceiptFilename builds the download name for a request receipt. The
// request number is preferred, with the raw id as fallback.
func ReceiptFilename(req *models.BorrowRequest, now time.Time) string {
	ref := req.RequestNumber
	if ref == "" {
		ref = req.ID.String()
	}
	return fmt.Sprintf("คำขอเบิก_%s_%d.pdf", ref, now.UnixMilli())
}

func summaryLine(itemCount, totalQty int) string {
	return fmt.Sprintf("รวม %d รายการ %d ชิ้น", itemCount, totalQty)
}

func statusLabel(s models.RequestStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return notSpecified
}

func orPlaceholder(s string) string {
	if s == "" {
		return notSpecified
	}
	return s
}

// Ellipsize shortens s to max runes, appending "..." when truncated.
func Ellipsize(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
