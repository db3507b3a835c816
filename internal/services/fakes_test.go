package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/collectflow/collections-campaign-backend/internal/apperrors"
	"github.com/collectflow/collections-campaign-backend/internal/models"
)

// In-memory repository fakes shared by the service tests.

type fakeReferenceRepo struct {
	states    map[uint]string
	dpds      map[uint]string
	channels  map[uint]string
	templates map[uint]string
	languages map[uint]string
}

func newFakeReferenceRepo() *fakeReferenceRepo {
	return &fakeReferenceRepo{
		states:    map[uint]string{1: "Maharashtra", 2: "Karnataka"},
		dpds:      map[uint]string{1: "T-6", 2: "T+30"},
		channels:  map[uint]string{1: "SMS", 2: "WhatsApp"},
		templates: map[uint]string{1: "Welcome", 2: "Reminder"},
		languages: map[uint]string{1: "English", 2: "Hindi"},
	}
}

func (r *fakeReferenceRepo) GetStates() ([]models.State, error) {
	out := make([]models.State, 0, len(r.states))
	for id, name := range r.states {
		out = append(out, models.State{ID: id, Name: name})
	}
	return out, nil
}

func (r *fakeReferenceRepo) GetDpdBuckets() ([]models.DpdBucket, error) {
	out := make([]models.DpdBucket, 0, len(r.dpds))
	for id, name := range r.dpds {
		out = append(out, models.DpdBucket{ID: id, Name: name})
	}
	return out, nil
}

func (r *fakeReferenceRepo) GetChannels() ([]models.Channel, error) {
	out := make([]models.Channel, 0, len(r.channels))
	for id, name := range r.channels {
		out = append(out, models.Channel{ID: id, Name: name})
	}
	return out, nil
}

func (r *fakeReferenceRepo) GetTemplates(channelID *uint) ([]models.Template, error) {
	out := make([]models.Template, 0, len(r.templates))
	for id, name := range r.templates {
		out = append(out, models.Template{ID: id, Name: name})
	}
	return out, nil
}

func (r *fakeReferenceRepo) GetLanguages() ([]models.Language, error) {
	out := make([]models.Language, 0, len(r.languages))
	for id, name := range r.languages {
		out = append(out, models.Language{ID: id, Name: name})
	}
	return out, nil
}

func (r *fakeReferenceRepo) GetStateByID(id uint) (*models.State, error) {
	name, ok := r.states[id]
	if !ok {
		return nil, nil
	}
	return &models.State{ID: id, Name: name}, nil
}

func (r *fakeReferenceRepo) GetDpdBucketByID(id uint) (*models.DpdBucket, error) {
	name, ok := r.dpds[id]
	if !ok {
		return nil, nil
	}
	return &models.DpdBucket{ID: id, Name: name}, nil
}

func (r *fakeReferenceRepo) GetChannelByID(id uint) (*models.Channel, error) {
	name, ok := r.channels[id]
	if !ok {
		return nil, nil
	}
	return &models.Channel{ID: id, Name: name}, nil
}

func (r *fakeReferenceRepo) GetTemplateByID(id uint) (*models.Template, error) {
	name, ok := r.templates[id]
	if !ok {
		return nil, nil
	}
	return &models.Template{ID: id, Name: name}, nil
}

func (r *fakeReferenceRepo) GetLanguageByID(id uint) (*models.Language, error) {
	name, ok := r.languages[id]
	if !ok {
		return nil, nil
	}
	return &models.Language{ID: id, Name: name}, nil
}

func (r *fakeReferenceRepo) CountDimensions() (int64, int64, int64, error) {
	return int64(len(r.states)), int64(len(r.dpds)), int64(len(r.channels)), nil
}

type fakeCampaignRepo struct {
	campaigns map[uint]*models.Campaign
	nextID    uint
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{campaigns: map[uint]*models.Campaign{}, nextID: 1}
}

func (r *fakeCampaignRepo) GetByID(id uint) (*models.Campaign, error) {
	campaign, ok := r.campaigns[id]
	if !ok {
		return nil, nil
	}
	copied := *campaign
	return &copied, nil
}

func (r *fakeCampaignRepo) GetByName(name string) (*models.Campaign, error) {
	for _, campaign := range r.campaigns {
		if campaign.Name == name {
			copied := *campaign
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeCampaignRepo) CreateWithFilters(campaign *models.Campaign, filters []models.CampaignFilter) error {
	campaign.ID = r.nextID
	r.nextID++
	campaign.Filters = filters
	copied := *campaign
	r.campaigns[campaign.ID] = &copied
	return nil
}

func (r *fakeCampaignRepo) UpdateWithFilters(campaign *models.Campaign, filters []models.CampaignFilter, replaceFilters bool) error {
	existing, ok := r.campaigns[campaign.ID]
	if !ok {
		return errors.New("campaign not found")
	}
	copied := *campaign
	if replaceFilters {
		copied.Filters = filters
	} else {
		copied.Filters = existing.Filters
	}
	r.campaigns[campaign.ID] = &copied
	return nil
}

func (r *fakeCampaignRepo) DeleteWithFilters(id uint) error {
	delete(r.campaigns, id)
	return nil
}

func (r *fakeCampaignRepo) List(q models.CampaignListQuery) ([]*models.Campaign, int64, error) {
	var out []*models.Campaign
	for _, campaign := range r.campaigns {
		if q.Status != "" && campaign.Status != q.Status {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(campaign.Name), strings.ToLower(q.Search)) {
			continue
		}
		copied := *campaign
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCampaignRepo) FindActiveByDimensions(criteria models.TargetingCriteria) ([]*models.Campaign, error) {
	contains := func(ids []uint, id uint) bool {
		if len(ids) == 0 {
			return true
		}
		for _, candidate := range ids {
			if candidate == id {
				return true
			}
		}
		return false
	}
	var out []*models.Campaign
	for _, campaign := range r.campaigns {
		if campaign.Status != models.StatusActive {
			continue
		}
		if !contains(criteria.StateIDs, campaign.StateID) ||
			!contains(criteria.DpdIDs, campaign.DpdID) ||
			!contains(criteria.ChannelIDs, campaign.ChannelID) ||
			!contains(criteria.TemplateIDs, campaign.TemplateID) ||
			!contains(criteria.LanguageIDs, campaign.LanguageID) {
			continue
		}
		copied := *campaign
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeCampaignRepo) CountByDimension() (*models.TargetingSuggestions, error) {
	return &models.TargetingSuggestions{
		States: []models.DimensionCount{{ID: 1, Name: "Maharashtra", Count: len(r.campaigns)}},
	}, nil
}

// add stores a campaign directly, bypassing service validation
func (r *fakeCampaignRepo) add(campaign *models.Campaign) *models.Campaign {
	if campaign.ID == 0 {
		campaign.ID = r.nextID
		r.nextID++
	}
	copied := *campaign
	r.campaigns[campaign.ID] = &copied
	return campaign
}

type appliedTransition struct {
	campaignID uint
	action     string
	fromStatus string
	updates    map[string]interface{}
	audit      *models.ApprovalAudit
}

type fakeApprovalRepo struct {
	campaigns   *fakeCampaignRepo
	transitions []appliedTransition
	pending     []*models.CampaignReviewResponse
	history     []*models.ApprovalHistoryEntry
	exportRows  []*models.ApprovalExportRow
}

func (r *fakeApprovalRepo) ApplyTransition(campaignID uint, action, fromStatus string, updates map[string]interface{}, audit *models.ApprovalAudit) error {
	campaign, ok := r.campaigns.campaigns[campaignID]
	if !ok {
		return apperrors.NewNotFound("campaign", campaignID)
	}
	if campaign.Status != fromStatus {
		return apperrors.NewInvalidTransition(action, campaign.Status, fromStatus)
	}
	campaign.Status = updates["status"].(string)
	r.transitions = append(r.transitions, appliedTransition{
		campaignID: campaignID,
		action:     action,
		fromStatus: fromStatus,
		updates:    updates,
		audit:      audit,
	})
	return nil
}

func (r *fakeApprovalRepo) PendingList(q models.PendingApprovalQuery) ([]*models.CampaignReviewResponse, int64, error) {
	return r.pending, int64(len(r.pending)), nil
}

func (r *fakeApprovalRepo) GetReview(campaignID uint) (*models.CampaignReviewResponse, error) {
	for _, review := range r.pending {
		if review.ID == campaignID {
			return review, nil
		}
	}
	return nil, nil
}

func (r *fakeApprovalRepo) History(campaignID uint) ([]*models.ApprovalHistoryEntry, error) {
	return r.history, nil
}

func (r *fakeApprovalRepo) ExportPending() ([]*models.ApprovalExportRow, error) {
	return r.exportRows, nil
}

type fakeCustomerRepo struct {
	customers []models.Customer
	err       error
}

func (r *fakeCustomerRepo) FindMatchingIDs(filter models.CustomerFilter) ([]uint, error) {
	if r.err != nil {
		return nil, r.err
	}
	var ids []uint
	for i := range r.customers {
		if filter.Matches(&r.customers[i]) {
			ids = append(ids, r.customers[i].ID)
		}
	}
	return ids, nil
}

type fakeAssignmentRepo struct {
	campaigns   *fakeCampaignRepo
	assigned    map[uint][]uint
	errorAudits []string
	failInsert  bool
}

func newFakeAssignmentRepo(campaigns *fakeCampaignRepo) *fakeAssignmentRepo {
	return &fakeAssignmentRepo{campaigns: campaigns, assigned: map[uint][]uint{}}
}

func (r *fakeAssignmentRepo) AssignCustomers(campaignID uint, customerIDs []uint) error {
	if r.failInsert {
		return errors.New("insert failed")
	}
	campaign, ok := r.campaigns.campaigns[campaignID]
	if !ok || campaign.Status != models.StatusActive {
		return apperrors.NewInvalidState("Campaign must be Active to assign")
	}
	campaign.Status = models.StatusAssigned
	campaign.AssignedCount = len(customerIDs)
	r.assigned[campaignID] = customerIDs
	return nil
}

func (r *fakeAssignmentRepo) MarkNoMatch(campaignID uint) error {
	campaign, ok := r.campaigns.campaigns[campaignID]
	if !ok || campaign.Status != models.StatusActive {
		return apperrors.NewInvalidState("Campaign must be Active to assign")
	}
	campaign.Status = models.StatusNoMatchFound
	campaign.AssignedCount = 0
	return nil
}

func (r *fakeAssignmentRepo) AppendError(campaignID uint, details string) error {
	r.errorAudits = append(r.errorAudits, fmt.Sprintf("%d: %s", campaignID, details))
	return nil
}
