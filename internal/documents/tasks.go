package documents

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue background document tasks are placed on.
	QueueDefault = "default"
	// TaskTypeRenderPDF converts a saved document's HTML to PDF.
	TaskTypeRenderPDF = "document:render_pdf"
)

// RenderPDFPayload identifies the document a render task targets.
type RenderPDFPayload struct {
	DocumentID string `json:"document_id"`
}

func newRenderPDFTask(documentID string) (*asynq.Task, error) {
	data, err := json.Marshal(RenderPDFPayload{DocumentID: documentID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeRenderPDF, data, asynq.Queue(QueueDefault)), nil
}
