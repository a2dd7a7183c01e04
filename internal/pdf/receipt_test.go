package pdf

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"yibyerm/internal/models"
)

func testGenerator() *Generator {
	return NewGenerator(models.PDFConfig{Institution: "KU Asset"}, zap.NewNop())
}

func sampleRequest() *models.BorrowRequest {
	return &models.BorrowRequest{
		ID:            uuid.New(),
		RequestNumber: "REQ-001",
		Status:        models.RequestPending,
		Purpose:       "Lab session",
		UserName:      "Somchai J.",
		UserEmail:     "somchai@example.ac.th",
		CreatedAt:     time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
		Items: []models.RequestItem{
			{Name: "Projector", Category: "AV", Quantity: 1},
			{Name: "HDMI cable", Category: "AV", Quantity: 2},
		},
	}
}

func TestGenerateRequestReceipt(t *testing.T) {
	data, filename, err := testGenerator().GenerateRequestReceipt(sampleRequest(), nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data[:5]), "%PDF-"))
	assert.Greater(t, len(data), 500)
	assert.Regexp(t, regexp.MustCompile(`^คำขอเบิก_REQ-001_\d+\.pdf$`), filename)
}

func TestGenerateRequestReceiptZeroItems(t *testing.T) {
	req := sampleRequest()
	req.Items = nil

	data, _, err := testGenerator().GenerateRequestReceipt(req, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data[:5]), "%PDF-"))
}

func TestGenerateRequestReceiptMissingFields(t *testing.T) {
	req := &models.BorrowRequest{ID: uuid.New(), CreatedAt: time.Now()}

	data, filename, err := testGenerator().GenerateRequestReceipt(req, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	// Without a request number the raw id is used.
	assert.Contains(t, filename, req.ID.String())
}

func TestGenerateRequestReceiptWithApprover(t *testing.T) {
	req := sampleRequest()
	req.Status = models.RequestApproved
	approver := "Head of Dept"
	approvedAt := time.Now()
	req.ApproverName = &approver
	req.ApprovedAt = &approvedAt
	req.ReviewNote = "pick up at room 204"

	_, _, err := testGenerator().GenerateRequestReceipt(req, nil)
	require.NoError(t, err)
}

func TestNewGeneratorWarnsOnMissingFont(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	g := NewGenerator(models.PDFConfig{Institution: "KU", FontPath: "missing/font.ttf"}, zap.New(core))
	assert.Equal(t, "Helvetica", g.fontFamily)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "font")

	// No font configured at all is not worth a warning.
	core, logs = observer.New(zap.WarnLevel)
	NewGenerator(models.PDFConfig{Institution: "KU"}, zap.New(core))
	assert.Equal(t, 0, logs.Len())
}

func TestReceiptFilename(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	name := ReceiptFilename(&models.BorrowRequest{RequestNumber: "REQ-042"}, now)
	assert.Equal(t, "คำขอเบิก_REQ-042_1700000000000.pdf", name)

	id := uuid.New()
	name = ReceiptFilename(&models.BorrowRequest{ID: id}, now)
	assert.Equal(t, "คำขอเบิก_"+id.String()+"_1700000000000.pdf", name)
}

func TestSummaryLine(t *testing.T) {
	assert.Equal(t, "รวม 0 รายการ 0 ชิ้น", summaryLine(0, 0))
	assert.Equal(t, "รวม 2 รายการ 3 ชิ้น", summaryLine(2, 3))
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "รออนุมัติ", statusLabel(models.RequestPending))
	assert.Equal(t, "อนุมัติแล้ว", statusLabel(models.RequestApproved))
	assert.Equal(t, "ไม่ระบุ", statusLabel(models.RequestStatus("weird")))
}

func TestEllipsize(t *testing.T) {
	assert.Equal(t, "short", Ellipsize("short", 35))

	long := strings.Repeat("ก", 40)
	got := Ellipsize(long, 35)
	assert.Equal(t, strings.Repeat("ก", 35)+"...", got)

	exact := strings.Repeat("x", 35)
	assert.Equal(t, exact, Ellipsize(exact, 35))
}

func TestCustomOptions(t *testing.T) {
	opts := &Options{PageSize: "Letter", Orientation: "L", Margin: 25}
	_, _, err := testGenerator().GenerateRequestReceipt(sampleRequest(), opts)
	require.NoError(t, err)
}
