package printing

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/baogia/backend/internal/domain/catalog"
	"github.com/baogia/backend/internal/domain/identity"
	"github.com/baogia/backend/internal/domain/printing"
	"github.com/baogia/backend/internal/domain/quote"
	"github.com/baogia/backend/internal/domain/settings"
	"github.com/baogia/backend/internal/domain/shared"
	infra "github.com/baogia/backend/internal/infrastructure/printing"
)

// PrintService renders quotes to HTML and PDF and manages custom print
// templates and render jobs.
type PrintService struct {
	quotes       quote.Repository
	profiles     settings.Repository
	categories   catalog.MainCategoryRepository
	users        identity.Repository
	templateRepo printing.TemplateRepository
	jobRepo      printing.JobRepository
	composer     *infra.Composer
	htmlRenderer *infra.HTMLRenderer
	pdfRenderer  infra.PDFRenderer
	pdfStorage   infra.PDFStorage
	logger       *zap.Logger
}

// NewPrintService creates a new PrintService
func NewPrintService(
	quotes quote.Repository,
	profiles settings.Repository,
	categories catalog.MainCategoryRepository,
	users identity.Repository,
	templateRepo printing.TemplateRepository,
	jobRepo printing.JobRepository,
	composer *infra.Composer,
	htmlRenderer *infra.HTMLRenderer,
	pdfRenderer infra.PDFRenderer,
	pdfStorage infra.PDFStorage,
	logger *zap.Logger,
) *PrintService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrintService{
		quotes:       quotes,
		profiles:     profiles,
		categories:   categories,
		users:        users,
		templateRepo: templateRepo,
		jobRepo:      jobRepo,
		composer:     composer,
		htmlRenderer: htmlRenderer,
		pdfRenderer:  pdfRenderer,
		pdfStorage:   pdfStorage,
		logger:       logger,
	}
}

// CreateTemplate creates a custom print template
func (s *PrintService) CreateTemplate(ctx context.Context, ownerID uuid.UUID, req CreateTemplateRequest) (*TemplateResponse, error) {
	exists, err := s.templateRepo.ExistsByName(ctx, ownerID, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check template existence: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Template with this name already exists")
	}

	paperSize := printing.PaperSizeA4
	if req.PaperSize != "" {
		paperSize = printing.PaperSize(req.PaperSize)
	}

	tpl, err := printing.NewPrintTemplate(ownerID, req.Name, req.Content, paperSize)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := tpl.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.Orientation != "" {
		tpl.Orientation = printing.Orientation(req.Orientation)
	}
	if req.Margins != nil {
		if err := tpl.SetMargins(printing.Margins{
			Top:    req.Margins.Top,
			Right:  req.Margins.Right,
			Bottom: req.Margins.Bottom,
			Left:   req.Margins.Left,
		}); err != nil {
			return nil, err
		}
	}
	if req.IsDefault {
		if err := s.clearDefault(ctx, ownerID); err != nil {
			return nil, err
		}
		tpl.MarkDefault()
	}

	if err := s.templateRepo.Save(ctx, tpl); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	s.logger.Info("print template created",
		zap.String("template_id", tpl.ID.String()),
		zap.String("name", tpl.Name))

	return toTemplateResponse(tpl), nil
}

// GetTemplate returns one print template
func (s *PrintService) GetTemplate(ctx context.Context, ownerID, templateID uuid.UUID) (*TemplateResponse, error) {
	tpl, err := s.findTemplate(ctx, ownerID, templateID)
	if err != nil {
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

// ListTemplates returns the owner's print templates
func (s *PrintService) ListTemplates(ctx context.Context, ownerID uuid.UUID) ([]TemplateResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 100
	filter.OrderBy = "name"
	filter.OrderDir = "asc"

	templates, err := s.templateRepo.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	responses := make([]TemplateResponse, 0, len(templates))
	for idx := range templates {
		resp := toTemplateResponse(&templates[idx])
		// content is heavy; the list view only needs metadata
		resp.Content = ""
		responses = append(responses, *resp)
	}
	return responses, nil
}

// UpdateTemplate updates a print template
func (s *PrintService) UpdateTemplate(ctx context.Context, ownerID, templateID uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, error) {
	tpl, err := s.findTemplate(ctx, ownerID, templateID)
	if err != nil {
		return nil, err
	}

	if err := tpl.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := tpl.UpdateContent(req.Content); err != nil {
		return nil, err
	}
	if req.Margins != nil {
		if err := tpl.SetMargins(printing.Margins{
			Top:    req.Margins.Top,
			Right:  req.Margins.Right,
			Bottom: req.Margins.Bottom,
			Left:   req.Margins.Left,
		}); err != nil {
			return nil, err
		}
	}

	if err := s.templateRepo.Save(ctx, tpl); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}
	return toTemplateResponse(tpl), nil
}

// SetDefaultTemplate marks a template as the default quote layout,
// unmarking the previous default.
func (s *PrintService) SetDefaultTemplate(ctx context.Context, ownerID, templateID uuid.UUID) (*TemplateResponse, error) {
	tpl, err := s.findTemplate(ctx, ownerID, templateID)
	if err != nil {
		return nil, err
	}
	if !tpl.CanBeUsed() {
		return nil, shared.NewDomainError("INVALID_STATE", "Template is not available for use")
	}

	if err := s.clearDefault(ctx, ownerID); err != nil {
		return nil, err
	}
	tpl.MarkDefault()
	if err := s.templateRepo.Save(ctx, tpl); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}
	return toTemplateResponse(tpl), nil
}

// DeleteTemplate removes a print template
func (s *PrintService) DeleteTemplate(ctx context.Context, ownerID, templateID uuid.UUID) error {
	tpl, err := s.findTemplate(ctx, ownerID, templateID)
	if err != nil {
		return err
	}
	if err := s.templateRepo.Delete(ctx, tpl.ID); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// Preview renders a quote to HTML without creating a job
func (s *PrintService) Preview(ctx context.Context, ownerID, quoteID uuid.UUID, req PreviewRequest) (*PreviewResponse, error) {
	doc, err := s.composeQuote(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}

	tpl, err := s.resolveTemplate(ctx, ownerID, req.TemplateID)
	if err != nil {
		return nil, err
	}

	html, err := s.renderHTML(tpl, doc)
	if err != nil {
		return nil, shared.NewDomainError("RENDER_FAILED", "Template rendering failed")
	}

	resp := &PreviewResponse{
		HTML:        html,
		PaperSize:   printing.PaperSizeA4.String(),
		Orientation: printing.OrientationPortrait.String(),
	}
	if tpl != nil {
		resp.TemplateID = tpl.ID.String()
		resp.PaperSize = tpl.PaperSize.String()
		resp.Orientation = tpl.Orientation.String()
	}
	return resp, nil
}

// GeneratePDF renders a quote to PDF, stores it and tracks the work as
// a print job.
func (s *PrintService) GeneratePDF(ctx context.Context, ownerID, quoteID uuid.UUID, req GeneratePDFRequest) (*PrintJobResponse, error) {
	q, err := s.quotes.FindByIDForOwner(ctx, ownerID, quoteID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Quote not found")
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	tpl, err := s.resolveTemplate(ctx, ownerID, req.TemplateID)
	if err != nil {
		return nil, err
	}

	var templateID *uuid.UUID
	if tpl != nil {
		id := tpl.ID
		templateID = &id
	}

	job, err := printing.NewPrintJob(ownerID, q.ID, q.Number, templateID)
	if err != nil {
		return nil, err
	}
	if err := s.jobRepo.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save print job: %w", err)
	}

	if err := job.StartRendering(); err != nil {
		return nil, err
	}
	if err := s.jobRepo.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}

	doc := s.composeLoaded(ctx, q)
	html, err := s.renderHTML(tpl, doc)
	if err != nil {
		s.logger.Error("template rendering failed",
			zap.Error(err), zap.String("job_id", job.ID.String()))
		_ = job.Fail("Template rendering failed. Please check template syntax.")
		_ = s.jobRepo.Save(ctx, job)
		return nil, fmt.Errorf("failed to render template: %w", err)
	}

	paperSize := printing.PaperSizeA4
	orientation := printing.OrientationPortrait
	margins := printing.DefaultMargins()
	if tpl != nil {
		paperSize = tpl.PaperSize
		orientation = tpl.Orientation
		margins = tpl.Margins
	}

	pdfResult, err := s.pdfRenderer.Render(ctx, &infra.RenderRequest{
		HTML:        html,
		PaperSize:   paperSize,
		Orientation: orientation,
		Margins:     margins,
		Title:       "Báo giá " + q.Number,
	})
	if err != nil {
		s.logger.Error("PDF rendering failed",
			zap.Error(err), zap.String("job_id", job.ID.String()))
		_ = job.Fail("PDF generation failed. Please try again later.")
		_ = s.jobRepo.Save(ctx, job)
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	storeResult, err := s.pdfStorage.Store(ctx, &infra.StoreRequest{
		OwnerID: ownerID,
		JobID:   job.ID,
		PDFData: pdfResult.PDFData,
	})
	if err != nil {
		s.logger.Error("PDF storage failed",
			zap.Error(err), zap.String("job_id", job.ID.String()))
		_ = job.Fail("Failed to save PDF file. Please try again later.")
		_ = s.jobRepo.Save(ctx, job)
		return nil, fmt.Errorf("failed to store PDF: %w", err)
	}

	if err := job.Complete(storeResult.Path, storeResult.URL); err != nil {
		return nil, err
	}
	if err := s.jobRepo.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job status: %w", err)
	}

	s.logger.Info("quote PDF generated",
		zap.String("job_id", job.ID.String()),
		zap.String("quote_number", q.Number),
		zap.String("url", storeResult.URL))

	return toJobResponse(job), nil
}

// GetJob returns one print job
func (s *PrintService) GetJob(ctx context.Context, ownerID, jobID uuid.UUID) (*PrintJobResponse, error) {
	job, err := s.findJob(ctx, ownerID, jobID)
	if err != nil {
		return nil, err
	}
	return toJobResponse(job), nil
}

// ListJobs returns the owner's print jobs, newest first
func (s *PrintService) ListJobs(ctx context.Context, ownerID uuid.UUID, req ListJobsRequest) (*ListJobsResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}

	jobs, err := s.jobRepo.FindAllForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	total, err := s.jobRepo.CountForOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	items := make([]PrintJobResponse, 0, len(jobs))
	for idx := range jobs {
		items = append(items, *toJobResponse(&jobs[idx]))
	}
	return &ListJobsResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}, nil
}

// GetJobsByQuote returns all render jobs of one quote
func (s *PrintService) GetJobsByQuote(ctx context.Context, ownerID, quoteID uuid.UUID) ([]PrintJobResponse, error) {
	jobs, err := s.jobRepo.FindByQuote(ctx, ownerID, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to find jobs: %w", err)
	}
	result := make([]PrintJobResponse, 0, len(jobs))
	for idx := range jobs {
		result = append(result, *toJobResponse(&jobs[idx]))
	}
	return result, nil
}

// DownloadPDF streams a completed job's PDF back to the caller
func (s *PrintService) DownloadPDF(ctx context.Context, ownerID, jobID uuid.UUID) (*DownloadResult, error) {
	job, err := s.findJob(ctx, ownerID, jobID)
	if err != nil {
		return nil, err
	}
	if !job.IsCompleted() || job.PdfPath == "" {
		return nil, shared.NewDomainError("INVALID_STATE", "Print job has no PDF")
	}

	reader, err := s.pdfStorage.Get(ctx, job.PdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open stored PDF: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read stored PDF: %w", err)
	}

	return &DownloadResult{
		FileName: job.QuoteNumber + ".pdf",
		Data:     data,
	}, nil
}

// composeQuote loads the quote and its surroundings and builds the
// print document.
func (s *PrintService) composeQuote(ctx context.Context, ownerID, quoteID uuid.UUID) (*infra.Document, error) {
	q, err := s.quotes.FindByIDForOwner(ctx, ownerID, quoteID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Quote not found")
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return s.composeLoaded(ctx, q), nil
}

// composeLoaded builds the print document for an already loaded quote.
// Profile, categories and creator name are best effort; a missing
// profile just leaves the letterhead empty.
func (s *PrintService) composeLoaded(ctx context.Context, q *quote.Quote) *infra.Document {
	profile, err := s.profiles.FindByOwner(ctx, q.OwnerID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("failed to load company profile for printing", zap.Error(err))
	}

	categories, err := s.categories.FindAllOrdered(ctx, q.OwnerID)
	if err != nil {
		s.logger.Warn("failed to load categories for printing", zap.Error(err))
	}

	creatorName := ""
	if user, err := s.users.FindByID(ctx, q.OwnerID); err == nil {
		creatorName = user.Name
	}

	return s.composer.Compose(q, profile, categories, creatorName)
}

// resolveTemplate picks the custom template to render with. Explicit
// template IDs must resolve; otherwise the owner's default is used and
// nil means the built-in layout.
func (s *PrintService) resolveTemplate(ctx context.Context, ownerID uuid.UUID, templateID *uuid.UUID) (*printing.PrintTemplate, error) {
	if templateID != nil {
		tpl, err := s.findTemplate(ctx, ownerID, *templateID)
		if err != nil {
			return nil, err
		}
		if !tpl.CanBeUsed() {
			return nil, shared.NewDomainError("INVALID_STATE", "Template is not available for use")
		}
		return tpl, nil
	}

	tpl, err := s.templateRepo.FindDefault(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find default template: %w", err)
	}
	if tpl != nil && !tpl.CanBeUsed() {
		return nil, nil
	}
	return tpl, nil
}

func (s *PrintService) renderHTML(tpl *printing.PrintTemplate, doc *infra.Document) (string, error) {
	if tpl != nil {
		return s.htmlRenderer.RenderCustom(tpl.Content, doc)
	}
	return s.htmlRenderer.Render(doc)
}

func (s *PrintService) clearDefault(ctx context.Context, ownerID uuid.UUID) error {
	current, err := s.templateRepo.FindDefault(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find default template: %w", err)
	}
	if current == nil {
		return nil
	}
	current.UnmarkDefault()
	if err := s.templateRepo.Save(ctx, current); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	return nil
}

func (s *PrintService) findTemplate(ctx context.Context, ownerID, templateID uuid.UUID) (*printing.PrintTemplate, error) {
	tpl, err := s.templateRepo.FindByIDForOwner(ctx, ownerID, templateID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Template not found")
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return tpl, nil
}

func (s *PrintService) findJob(ctx context.Context, ownerID, jobID uuid.UUID) (*printing.PrintJob, error) {
	job, err := s.jobRepo.FindByIDForOwner(ctx, ownerID, jobID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Print job not found")
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

func toTemplateResponse(t *printing.PrintTemplate) *TemplateResponse {
	return &TemplateResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		Content:     t.Content,
		PaperSize:   t.PaperSize.String(),
		Orientation: t.Orientation.String(),
		Margins: MarginsDTO{
			Top:    t.Margins.Top,
			Right:  t.Margins.Right,
			Bottom: t.Margins.Bottom,
			Left:   t.Margins.Left,
		},
		IsDefault: t.IsDefault,
		Status:    t.Status.String(),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toJobResponse(j *printing.PrintJob) *PrintJobResponse {
	resp := &PrintJobResponse{
		ID:           j.ID.String(),
		QuoteID:      j.QuoteID.String(),
		QuoteNumber:  j.QuoteNumber,
		Status:       j.Status.String(),
		PdfURL:       j.PdfURL,
		ErrorMessage: j.ErrorMessage,
		PrintedAt:    j.PrintedAt,
		CreatedAt:    j.CreatedAt,
	}
	if j.TemplateID != nil {
		id := j.TemplateID.String()
		resp.TemplateID = &id
	}
	return resp
}
