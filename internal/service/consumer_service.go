package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"healthlync-be/internal/constant"
	"healthlync-be/internal/dto"
	"healthlync-be/internal/entity"
	"healthlync-be/internal/repository/specification"
	"healthlync-be/internal/repository/unitofwork"
	"healthlync-be/pkg/embedding"
	"healthlync-be/pkg/store"
	"healthlync-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	jobStore          *store.JobStatusStore
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	jobStore *store.JobStatusStore,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		jobStore:          jobStore,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedReportMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing lab report embedding for ReportId: %s", payload.ReportId)
	cs.setJobState(payload, store.JobProcessing, 0, "")

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.LabReportRepository().FindOne(ctx, specification.ByID{ID: payload.ReportId})
	if err != nil {
		log.Printf("[ERROR] Failed to get lab report %s: %v", payload.ReportId, err)
		cs.setJobState(payload, store.JobFailed, 0, "failed to load report")
		msg.Nack()
		return
	}
	if report == nil {
		// Report deleted before the worker got to it
		log.Printf("[ERROR] Lab report not found: %s", payload.ReportId)
		cs.setJobState(payload, store.JobFailed, 0, "report not found")
		msg.Ack()
		return
	}

	content := formatReportDocument(report)
	log.Printf("[INFO] Generating embeddings for report %s (content length: %d)", payload.ReportId, len(content))

	// 1500 chars per chunk keeps well inside embedding context limits
	chunks := utils.SplitText(content, 1500, 200)
	log.Printf("[INFO] Content split into %d chunks", len(chunks))

	var docs []*entity.MedicalDocument
	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(ctx, chunk)
		if err != nil {
			log.Printf("[ERROR] Failed to generate embedding for chunk %d of report %s: %v", i, payload.ReportId, err)
			cs.setJobState(payload, store.JobFailed, 0, "embedding provider failed")
			msg.Nack()
			return
		}

		title := fmt.Sprintf("Lab Report %s", report.FileName)
		if len(chunks) > 1 {
			title = fmt.Sprintf("%s (part %d)", title, i+1)
		}

		docs = append(docs, &entity.MedicalDocument{
			Id:         uuid.New(),
			Title:      title,
			Content:    chunk,
			Source:     constant.LabUploadSource,
			Categories: []string{"lab-results"},
			Embedding:  res.Values,
			CreatedAt:  time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		cs.setJobState(payload, store.JobFailed, 0, "transaction failed")
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if len(docs) > 0 {
		if err := uow.MedicalDocumentRepository().CreateBulk(ctx, docs); err != nil {
			log.Printf("[ERROR] Failed to create bulk documents: %v", err)
			cs.setJobState(payload, store.JobFailed, 0, "failed to store documents")
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		cs.setJobState(payload, store.JobFailed, 0, "commit failed")
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Lab report processed: %d chunks for ReportId: %s", len(docs), payload.ReportId)
	cs.setJobState(payload, store.JobCompleted, len(docs), "")
	msg.Ack()
}

func (cs *consumerService) setJobState(payload dto.PublishEmbedReportMessage, state store.JobState, chunks int, errMsg string) {
	cs.jobStore.Set(&store.JobStatus{
		JobID:    payload.JobId,
		ReportID: payload.ReportId.String(),
		State:    state,
		Chunks:   chunks,
		Error:    errMsg,
	})
}

// formatReportDocument renders a lab report into the readable text that gets
// embedded into the knowledge base.
func formatReportDocument(report *entity.LabReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Lab Report: %s\n", report.FileName)
	if report.TestDate != nil {
		fmt.Fprintf(&b, "Test Date: %s\n", report.TestDate.Format("2006-01-02"))
	}
	b.WriteString("\nResults:\n")

	for _, v := range report.Values {
		fmt.Fprintf(&b, "%s: %g %s", v.TestName, v.Value, v.Unit)
		if v.ReferenceRange != nil && *v.ReferenceRange != "" {
			fmt.Fprintf(&b, " (Reference: %s)", *v.ReferenceRange)
		}
		b.WriteString("\n")
	}

	return b.String()
}
