package view

type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// AlertClass maps the kind to a Bootstrap alert class.
func (k FlashKind) AlertClass() string {
	if k == FlashError {
		return "alert-danger"
	}
	return "alert-" + string(k)
}
