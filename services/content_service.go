package services

import (
	"context"
	"fmt"
	"strings"

	"abchotels/constants"
	"abchotels/dto"
	"abchotels/models"
	"abchotels/repository"
	"abchotels/services/logger"
	"abchotels/services/notification"
	"abchotels/utils"
)

type ContentService struct {
	repo     repository.ContentRepository
	notifier notification.Service
	log      logger.Logger
}

func NewContentService(repo repository.ContentRepository, notifier notification.Service, log logger.Logger) *ContentService {
	return &ContentService{repo: repo, notifier: notifier, log: log}
}

// FAQGroups returns every category in display order, each with its active FAQs
func (s *ContentService) FAQGroups(ctx context.Context) ([]dto.FAQGroup, error) {
	faqs, err := s.repo.ListFAQs(ctx, 0)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]models.FAQ)
	for _, f := range faqs {
		byCategory[f.Category] = append(byCategory[f.Category], f)
	}

	groups := make([]dto.FAQGroup, 0, len(constants.FAQCategories))
	for _, c := range constants.FAQCategories {
		items := byCategory[c.Key]
		if items == nil {
			items = []models.FAQ{}
		}
		groups = append(groups, dto.FAQGroup{Key: c.Key, Name: c.Name, FAQs: items})
	}
	return groups, nil
}

// ContactPage returns the handful of FAQs shown next to the contact form
func (s *ContentService) ContactPage(ctx context.Context) ([]models.FAQ, error) {
	return s.repo.ListFAQs(ctx, constants.ContactFAQLimit)
}

func (s *ContentService) SubmitContact(ctx context.Context, req dto.ContactRequest) (*dto.ContactResponse, error) {
	method := strings.ToLower(strings.TrimSpace(req.ContactMethod))
	if method == "" {
		method = "email"
	}

	msg := &models.ContactMessage{
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Subject:       strings.TrimSpace(req.Subject),
		Message:       req.Message,
		ContactMethod: method,
	}
	if err := s.repo.CreateContactMessage(ctx, msg); err != nil {
		return nil, err
	}

	event := notification.NewMessageBuilder(notification.EventContactReceived).
		Message("New message from %s: %s", msg.Name, msg.Subject).
		Data(map[string]interface{}{"contactMessageId": msg.ID, "contactMethod": method}).
		Build()
	if err := s.notifier.Publish(ctx, event); err != nil {
		s.log.Error("publish %s: %v", event.Type, err)
	}

	return &dto.ContactResponse{
		ID:            msg.ID,
		ContactMethod: method,
		Message:       fmt.Sprintf("Thank you %s! Your message has been sent. We will contact you via %s soon.", msg.Name, method),
	}, nil
}

func (s *ContentService) ListContactMessages(ctx context.Context, page utils.Pagination) ([]models.ContactMessage, int64, error) {
	return s.repo.ListContactMessages(ctx, page.Offset(), page.Limit)
}
