package printing

// PaperSize represents the paper size for rendering
type PaperSize string

const (
	PaperSizeA4 PaperSize = "A4" // 210mm x 297mm
	PaperSizeA5 PaperSize = "A5" // 148mm x 210mm
)

// IsValid checks if the PaperSize is a valid value
func (p PaperSize) IsValid() bool {
	return p == PaperSizeA4 || p == PaperSizeA5
}

// String returns the string representation of PaperSize
func (p PaperSize) String() string {
	return string(p)
}

// Dimensions returns the paper dimensions in millimeters (width, height)
func (p PaperSize) Dimensions() (width, height int) {
	switch p {
	case PaperSizeA5:
		return 148, 210
	default:
		return 210, 297
	}
}

// Orientation represents the page orientation
type Orientation string

const (
	OrientationPortrait  Orientation = "PORTRAIT"
	OrientationLandscape Orientation = "LANDSCAPE"
)

// IsValid checks if the Orientation is a valid value
func (o Orientation) IsValid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

// String returns the string representation of Orientation
func (o Orientation) String() string {
	return string(o)
}

// TemplateStatus represents the status of a print template
type TemplateStatus string

const (
	TemplateStatusActive   TemplateStatus = "ACTIVE"
	TemplateStatusInactive TemplateStatus = "INACTIVE"
)

// IsValid checks if the TemplateStatus is a valid value
func (s TemplateStatus) IsValid() bool {
	return s == TemplateStatusActive || s == TemplateStatusInactive
}

// String returns the string representation of TemplateStatus
func (s TemplateStatus) String() string {
	return string(s)
}

// JobStatus represents the status of a print job
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusRendering JobStatus = "RENDERING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
)

// IsValid checks if the JobStatus is a valid value
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusRendering, JobStatusCompleted, JobStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of JobStatus
func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal returns true if this is a terminal status
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// CanTransitionTo checks if the status can transition to the target status
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	switch s {
	case JobStatusPending:
		return target == JobStatusRendering || target == JobStatusFailed
	case JobStatusRendering:
		return target == JobStatusCompleted || target == JobStatusFailed
	case JobStatusCompleted, JobStatusFailed:
		return false
	}
	return false
}
