package printing

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baogia/backend/internal/domain/catalog"
	"github.com/baogia/backend/internal/domain/identity"
	"github.com/baogia/backend/internal/domain/printing"
	"github.com/baogia/backend/internal/domain/quote"
	"github.com/baogia/backend/internal/domain/settings"
	"github.com/baogia/backend/internal/domain/shared"
	infra "github.com/baogia/backend/internal/infrastructure/printing"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeQuoteRepo struct {
	quotes map[uuid.UUID]*quote.Quote
}

func newFakeQuoteRepo() *fakeQuoteRepo {
	return &fakeQuoteRepo{quotes: make(map[uuid.UUID]*quote.Quote)}
}

func (r *fakeQuoteRepo) FindByID(_ context.Context, id uuid.UUID) (*quote.Quote, error) {
	q, ok := r.quotes[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *q
	return &copied, nil
}

func (r *fakeQuoteRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*quote.Quote, error) {
	q, ok := r.quotes[id]
	if !ok || q.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	copied := *q
	return &copied, nil
}

func (r *fakeQuoteRepo) FindAll(_ context.Context, _ shared.Filter) ([]quote.Quote, error) {
	result := make([]quote.Quote, 0, len(r.quotes))
	for _, q := range r.quotes {
		result = append(result, *q)
	}
	return result, nil
}

func (r *fakeQuoteRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) ([]quote.Quote, error) {
	result := make([]quote.Quote, 0)
	for _, q := range r.quotes {
		if q.OwnerID == ownerID {
			result = append(result, *q)
		}
	}
	return result, nil
}

func (r *fakeQuoteRepo) Save(_ context.Context, q *quote.Quote) error {
	copied := *q
	r.quotes[q.ID] = &copied
	return nil
}

func (r *fakeQuoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.quotes, id)
	return nil
}

func (r *fakeQuoteRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.quotes)), nil
}

func (r *fakeQuoteRepo) CountForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	for _, q := range r.quotes {
		if q.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (r *fakeQuoteRepo) FindByNumber(_ context.Context, ownerID uuid.UUID, number string) (*quote.Quote, error) {
	for _, q := range r.quotes {
		if q.OwnerID == ownerID && q.Number == number {
			copied := *q
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*settings.CompanyProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*settings.CompanyProfile)}
}

func (r *fakeProfileRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) (*settings.CompanyProfile, error) {
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProfileRepo) Save(_ context.Context, p *settings.CompanyProfile) error {
	copied := *p
	r.profiles[p.OwnerID] = &copied
	return nil
}

type fakeCategoryRepo struct {
	categories []catalog.MainCategory
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.MainCategory, error) {
	for idx := range r.categories {
		if r.categories[idx].ID == id {
			copied := r.categories[idx]
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCategoryRepo) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*catalog.MainCategory, error) {
	cat, err := r.FindByID(ctx, id)
	if err != nil || cat.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	return cat, nil
}

func (r *fakeCategoryRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.MainCategory, error) {
	return append([]catalog.MainCategory(nil), r.categories...), nil
}

func (r *fakeCategoryRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) ([]catalog.MainCategory, error) {
	result := make([]catalog.MainCategory, 0)
	for idx := range r.categories {
		if r.categories[idx].OwnerID == ownerID {
			result = append(result, r.categories[idx])
		}
	}
	return result, nil
}

func (r *fakeCategoryRepo) Save(_ context.Context, cat *catalog.MainCategory) error {
	for idx := range r.categories {
		if r.categories[idx].ID == cat.ID {
			r.categories[idx] = *cat
			return nil
		}
	}
	r.categories = append(r.categories, *cat)
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	for idx := range r.categories {
		if r.categories[idx].ID == id {
			r.categories = append(r.categories[:idx], r.categories[idx+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeCategoryRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.categories)), nil
}

func (r *fakeCategoryRepo) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	cats, _ := r.FindAllForOwner(ctx, ownerID, filter)
	return int64(len(cats)), nil
}

func (r *fakeCategoryRepo) FindAllOrdered(ctx context.Context, ownerID uuid.UUID) ([]catalog.MainCategory, error) {
	return r.FindAllForOwner(ctx, ownerID, shared.DefaultFilter())
}

type fakeUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*identity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, _ shared.Filter) ([]identity.User, error) {
	result := make([]identity.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, *u)
	}
	return result, nil
}

func (r *fakeUserRepo) Save(_ context.Context, u *identity.User) error {
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type fakePrintTemplateRepo struct {
	templates map[uuid.UUID]*printing.PrintTemplate
}

func newFakePrintTemplateRepo() *fakePrintTemplateRepo {
	return &fakePrintTemplateRepo{templates: make(map[uuid.UUID]*printing.PrintTemplate)}
}

func (r *fakePrintTemplateRepo) FindByID(_ context.Context, id uuid.UUID) (*printing.PrintTemplate, error) {
	tpl, ok := r.templates[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *tpl
	return &copied, nil
}

func (r *fakePrintTemplateRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*printing.PrintTemplate, error) {
	tpl, ok := r.templates[id]
	if !ok || tpl.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	copied := *tpl
	return &copied, nil
}

func (r *fakePrintTemplateRepo) FindAll(_ context.Context, _ shared.Filter) ([]printing.PrintTemplate, error) {
	result := make([]printing.PrintTemplate, 0, len(r.templates))
	for _, tpl := range r.templates {
		result = append(result, *tpl)
	}
	return result, nil
}

func (r *fakePrintTemplateRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) ([]printing.PrintTemplate, error) {
	result := make([]printing.PrintTemplate, 0)
	for _, tpl := range r.templates {
		if tpl.OwnerID == ownerID {
			result = append(result, *tpl)
		}
	}
	return result, nil
}

func (r *fakePrintTemplateRepo) Save(_ context.Context, tpl *printing.PrintTemplate) error {
	copied := *tpl
	r.templates[tpl.ID] = &copied
	return nil
}

func (r *fakePrintTemplateRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.templates, id)
	return nil
}

func (r *fakePrintTemplateRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.templates)), nil
}

func (r *fakePrintTemplateRepo) CountForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	for _, tpl := range r.templates {
		if tpl.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (r *fakePrintTemplateRepo) FindDefault(_ context.Context, ownerID uuid.UUID) (*printing.PrintTemplate, error) {
	for _, tpl := range r.templates {
		if tpl.OwnerID == ownerID && tpl.IsDefault {
			copied := *tpl
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakePrintTemplateRepo) ExistsByName(_ context.Context, ownerID uuid.UUID, name string) (bool, error) {
	for _, tpl := range r.templates {
		if tpl.OwnerID == ownerID && tpl.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type fakeJobRepo struct {
	jobs map[uuid.UUID]*printing.PrintJob
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[uuid.UUID]*printing.PrintJob)}
}

func (r *fakeJobRepo) FindByID(_ context.Context, id uuid.UUID) (*printing.PrintJob, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) FindByIDForOwner(_ context.Context, ownerID, id uuid.UUID) (*printing.PrintJob, error) {
	job, ok := r.jobs[id]
	if !ok || job.OwnerID != ownerID {
		return nil, shared.ErrNotFound
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) FindAll(_ context.Context, _ shared.Filter) ([]printing.PrintJob, error) {
	result := make([]printing.PrintJob, 0, len(r.jobs))
	for _, job := range r.jobs {
		result = append(result, *job)
	}
	return result, nil
}

func (r *fakeJobRepo) FindAllForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) ([]printing.PrintJob, error) {
	result := make([]printing.PrintJob, 0)
	for _, job := range r.jobs {
		if job.OwnerID == ownerID {
			result = append(result, *job)
		}
	}
	return result, nil
}

func (r *fakeJobRepo) Save(_ context.Context, job *printing.PrintJob) error {
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.jobs)), nil
}

func (r *fakeJobRepo) CountForOwner(_ context.Context, ownerID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	for _, job := range r.jobs {
		if job.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (r *fakeJobRepo) FindByQuote(_ context.Context, ownerID, quoteID uuid.UUID) ([]printing.PrintJob, error) {
	result := make([]printing.PrintJob, 0)
	for _, job := range r.jobs {
		if job.OwnerID == ownerID && job.QuoteID == quoteID {
			result = append(result, *job)
		}
	}
	return result, nil
}

// stubPDFRenderer returns canned bytes instead of driving a browser
type stubPDFRenderer struct {
	fail bool
}

func (r *stubPDFRenderer) Render(_ context.Context, req *infra.RenderRequest) (*infra.RenderResult, error) {
	if r.fail {
		return nil, infra.NewRenderError(infra.ErrCodeRenderFailed, "renderer unavailable", nil)
	}
	if req.HTML == "" {
		return nil, infra.NewRenderError(infra.ErrCodeInvalidHTML, "empty HTML", nil)
	}
	return &infra.RenderResult{
		PDFData:        []byte("%PDF-1.4 stub"),
		PageCount:      1,
		RenderDuration: time.Millisecond,
	}, nil
}

func (r *stubPDFRenderer) Close() error { return nil }

// memoryPDFStorage keeps stored PDFs in a map
type memoryPDFStorage struct {
	files map[string][]byte
}

func newMemoryPDFStorage() *memoryPDFStorage {
	return &memoryPDFStorage{files: make(map[string][]byte)}
}

func (s *memoryPDFStorage) Store(_ context.Context, req *infra.StoreRequest) (*infra.StoreResult, error) {
	path := req.OwnerID.String() + "/" + req.JobID.String() + ".pdf"
	s.files[path] = req.PDFData
	return &infra.StoreResult{
		Path: path,
		URL:  "/api/v1/prints/" + path,
		Size: int64(len(req.PDFData)),
	}, nil
}

func (s *memoryPDFStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, infra.NewRenderError(infra.ErrCodeStorageFailed, "PDF not found", nil)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memoryPDFStorage) Delete(_ context.Context, path string) error {
	delete(s.files, path)
	return nil
}

func (s *memoryPDFStorage) CleanupOlderThan(_ context.Context, _ time.Duration) (int, error) {
	return 0, nil
}

func (s *memoryPDFStorage) GetURL(path string) string {
	return "/api/v1/prints/" + path
}

type testEnv struct {
	service   *PrintService
	quotes    *fakeQuoteRepo
	profiles  *fakeProfileRepo
	users     *fakeUserRepo
	templates *fakePrintTemplateRepo
	jobs      *fakeJobRepo
	renderer  *stubPDFRenderer
	storage   *memoryPDFStorage
	ownerID   uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	htmlRenderer, err := infra.NewHTMLRenderer()
	require.NoError(t, err)

	env := &testEnv{
		quotes:    newFakeQuoteRepo(),
		profiles:  newFakeProfileRepo(),
		users:     newFakeUserRepo(),
		templates: newFakePrintTemplateRepo(),
		jobs:      newFakeJobRepo(),
		renderer:  &stubPDFRenderer{},
		storage:   newMemoryPDFStorage(),
		ownerID:   uuid.New(),
	}
	env.service = NewPrintService(
		env.quotes,
		env.profiles,
		&fakeCategoryRepo{},
		env.users,
		env.templates,
		env.jobs,
		infra.NewComposer(),
		htmlRenderer,
		env.renderer,
		env.storage,
		nil,
	)
	return env
}

func (e *testEnv) seedQuote(t *testing.T) *quote.Quote {
	t.Helper()
	q, err := quote.NewQuote(e.ownerID, "Nguyễn Văn An", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	item, err := quote.NewLineItem("Tủ bếp trên", d("1"), d("1000000"), quote.CalcTypeUnit)
	require.NoError(t, err)
	require.NoError(t, q.AddItem(*item))

	require.NoError(t, e.quotes.Save(context.Background(), q))
	return q
}

func TestPrintService_GeneratePDF(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	q := env.seedQuote(t)

	job, err := env.service.GeneratePDF(ctx, env.ownerID, q.ID, GeneratePDFRequest{})
	require.NoError(t, err)

	assert.Equal(t, printing.JobStatusCompleted.String(), job.Status)
	assert.Equal(t, q.Number, job.QuoteNumber)
	assert.NotEmpty(t, job.PdfURL)
	assert.Nil(t, job.TemplateID)
	assert.NotNil(t, job.PrintedAt)

	download, err := env.service.DownloadPDF(ctx, env.ownerID, uuid.MustParse(job.ID))
	require.NoError(t, err)
	assert.Equal(t, q.Number+".pdf", download.FileName)
	assert.Equal(t, []byte("%PDF-1.4 stub"), download.Data)
}

func TestPrintService_GeneratePDF_RendererFailureFailsJob(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	q := env.seedQuote(t)
	env.renderer.fail = true

	_, err := env.service.GeneratePDF(ctx, env.ownerID, q.ID, GeneratePDFRequest{})
	require.Error(t, err)

	jobs, err := env.service.GetJobsByQuote(ctx, env.ownerID, q.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, printing.JobStatusFailed.String(), jobs[0].Status)
	assert.NotEmpty(t, jobs[0].ErrorMessage)
}

func TestPrintService_GeneratePDF_UnknownQuote(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.GeneratePDF(context.Background(), env.ownerID, uuid.New(), GeneratePDFRequest{})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestPrintService_Preview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	q := env.seedQuote(t)

	preview, err := env.service.Preview(ctx, env.ownerID, q.ID, PreviewRequest{})
	require.NoError(t, err)

	assert.Contains(t, preview.HTML, "BÁO GIÁ")
	assert.Contains(t, preview.HTML, q.Number)
	assert.Contains(t, preview.HTML, "Tủ bếp trên")
	assert.Equal(t, "A4", preview.PaperSize)
	assert.Empty(t, preview.TemplateID)
}

func TestPrintService_PreviewWithCustomTemplate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	q := env.seedQuote(t)

	tpl, err := env.service.CreateTemplate(ctx, env.ownerID, CreateTemplateRequest{
		Name:    "Mẫu gọn",
		Content: "<html><body><h1>{{.Number}}</h1></body></html>",
	})
	require.NoError(t, err)

	templateID := uuid.MustParse(tpl.ID)
	preview, err := env.service.Preview(ctx, env.ownerID, q.ID, PreviewRequest{TemplateID: &templateID})
	require.NoError(t, err)

	assert.Equal(t, "<html><body><h1>"+q.Number+"</h1></body></html>", preview.HTML)
	assert.Equal(t, tpl.ID, preview.TemplateID)
}

func TestPrintService_DefaultTemplateIsUsedWhenNoneGiven(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	q := env.seedQuote(t)

	tpl, err := env.service.CreateTemplate(ctx, env.ownerID, CreateTemplateRequest{
		Name:      "Mẫu mặc định",
		Content:   "<p>DEFAULT {{.Number}}</p>",
		IsDefault: true,
	})
	require.NoError(t, err)

	preview, err := env.service.Preview(ctx, env.ownerID, q.ID, PreviewRequest{})
	require.NoError(t, err)
	assert.Contains(t, preview.HTML, "DEFAULT")
	assert.Equal(t, tpl.ID, preview.TemplateID)
}

func TestPrintService_SetDefaultTemplateUnmarksPrevious(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.service.CreateTemplate(ctx, env.ownerID, CreateTemplateRequest{
		Name:      "Mẫu A",
		Content:   "<p>A</p>",
		IsDefault: true,
	})
	require.NoError(t, err)

	second, err := env.service.CreateTemplate(ctx, env.ownerID, CreateTemplateRequest{
		Name:    "Mẫu B",
		Content: "<p>B</p>",
	})
	require.NoError(t, err)

	_, err = env.service.SetDefaultTemplate(ctx, env.ownerID, uuid.MustParse(second.ID))
	require.NoError(t, err)

	templates, err := env.service.ListTemplates(ctx, env.ownerID)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	for _, tpl := range templates {
		switch tpl.ID {
		case first.ID:
			assert.False(t, tpl.IsDefault)
		case second.ID:
			assert.True(t, tpl.IsDefault)
		}
	}
}

func TestPrintService_CreateTemplate_DuplicateName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.CreateTemplate(ctx, env.ownerID, CreateTemplateRequest{
		Name:    "Mẫu gọn",
		Content: "<p>x</p>",
	})
	require.NoError(t, err)

	_, err = env.service.CreateTemplate(ctx, env.ownerID, CreateTemplateRequest{
		Name:    "Mẫu gọn",
		Content: "<p>y</p>",
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestPrintService_DownloadPDF_RequiresCompletedJob(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	q := env.seedQuote(t)

	job, err := printing.NewPrintJob(env.ownerID, q.ID, q.Number, nil)
	require.NoError(t, err)
	require.NoError(t, env.jobs.Save(ctx, job))

	_, err = env.service.DownloadPDF(ctx, env.ownerID, job.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}
