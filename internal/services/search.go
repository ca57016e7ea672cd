package services

import (
	"github.com/meilisearch/meilisearch-go"
	"github.com/sirupsen/logrus"

	"github.com/DaniilChichenkov/abik/internal/config"
	"github.com/DaniilChichenkov/abik/internal/models"
)

const (
	itemsIndex    = "service_items"
	requestsIndex = "service_requests"
)

// SearchService maintains the Meilisearch indexes behind the admin search
// box: the service catalogue and the incoming request list.
type SearchService struct {
	client *meilisearch.Client
}

func NewSearchService(cfg *config.Config) *SearchService {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   cfg.MeiliURL,
		APIKey: cfg.MeiliAPIKey,
	})

	// Ensure service_items index exists (best effort)
	_, err := client.GetIndex(itemsIndex)
	if err != nil {
		_, err = client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        itemsIndex,
			PrimaryKey: "id",
		})
		if err != nil {
			logrus.Warnf("Failed to create meilisearch %s index: %v", itemsIndex, err)
		}

		_, err = client.Index(itemsIndex).UpdateFilterableAttributes(&[]string{"category_id", "price_type"})
		if err != nil {
			logrus.Warnf("Failed to update %s filterable attributes: %v", itemsIndex, err)
		}

		_, err = client.Index(itemsIndex).UpdateSearchableAttributes(&[]string{"title_ee", "title_ru", "additional_info_ee", "additional_info_ru"})
		if err != nil {
			logrus.Warnf("Failed to update %s searchable attributes: %v", itemsIndex, err)
		}
	}

	// Ensure service_requests index exists (best effort)
	_, err = client.GetIndex(requestsIndex)
	if err != nil {
		_, err = client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        requestsIndex,
			PrimaryKey: "id",
		})
		if err != nil {
			logrus.Warnf("Failed to create meilisearch %s index: %v", requestsIndex, err)
		}

		_, err = client.Index(requestsIndex).UpdateFilterableAttributes(&[]string{"completed"})
		if err != nil {
			logrus.Warnf("Failed to update %s filterable attributes: %v", requestsIndex, err)
		}

		_, err = client.Index(requestsIndex).UpdateSortableAttributes(&[]string{"created_at"})
		if err != nil {
			logrus.Warnf("Failed to update %s sortable attributes: %v", requestsIndex, err)
		}

		_, err = client.Index(requestsIndex).UpdateSearchableAttributes(&[]string{"email", "phone_number", "service_title_ee", "service_title_ru"})
		if err != nil {
			logrus.Warnf("Failed to update %s searchable attributes: %v", requestsIndex, err)
		}
	}

	return &SearchService{client: client}
}

func (s *SearchService) IndexItem(item models.ServiceItem) error {
	_, err := s.client.Index(itemsIndex).AddDocuments([]models.ServiceItem{item})
	return err
}

func (s *SearchService) IndexItems(items []models.ServiceItem) error {
	if len(items) == 0 {
		return nil
	}
	_, err := s.client.Index(itemsIndex).AddDocuments(items)
	return err
}

func (s *SearchService) DeleteItem(itemID string) error {
	_, err := s.client.Index(itemsIndex).DeleteDocument(itemID)
	return err
}

func (s *SearchService) IndexRequest(request models.ServiceRequest) error {
	_, err := s.client.Index(requestsIndex).AddDocuments([]models.ServiceRequest{request})
	return err
}

func (s *SearchService) IndexRequests(requests []models.ServiceRequest) error {
	if len(requests) == 0 {
		return nil
	}
	_, err := s.client.Index(requestsIndex).AddDocuments(requests)
	return err
}

func (s *SearchService) DeleteRequest(requestID string) error {
	_, err := s.client.Index(requestsIndex).DeleteDocument(requestID)
	return err
}

// Search runs the query against both indexes.
func (s *SearchService) Search(query string) (items, requests *meilisearch.SearchResponse, err error) {
	request := &meilisearch.SearchRequest{Limit: 20}

	items, err = s.client.Index(itemsIndex).Search(query, request)
	if err != nil {
		return nil, nil, err
	}

	requests, err = s.client.Index(requestsIndex).Search(query, request)
	if err != nil {
		return nil, nil, err
	}

	return items, requests, nil
}

// DeleteAll drops every document from both indexes. Used by the reindex tool.
func (s *SearchService) DeleteAll() error {
	if _, err := s.client.Index(itemsIndex).DeleteAllDocuments(); err != nil {
		return err
	}
	_, err := s.client.Index(requestsIndex).DeleteAllDocuments()
	return err
}
