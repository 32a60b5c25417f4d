package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/example/techmarket/internal/core/fault"
	"github.com/example/techmarket/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockMissionRepository implements secondary.MissionRepository for testing.
type mockMissionRepository struct {
	missions  map[string]*secondary.MissionRecord
	nextID    int
	createErr error
	getErr    error
	listErr   error
	updateErr error
}

func newMockMissionRepository() *mockMissionRepository {
	return &mockMissionRepository{
		missions: make(map[string]*secondary.MissionRecord),
		nextID:   1,
	}
}

func (m *mockMissionRepository) Create(ctx context.Context, mission *secondary.MissionRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if mission.CreatedAt == "" {
		mission.CreatedAt = "2026-01-01T00:00:00Z"
	}
	stored := *mission
	m.missions[mission.ID] = &stored
	return nil
}

func (m *mockMissionRepository) GetByID(ctx context.Context, id string) (*secondary.MissionRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	mission, ok := m.missions[id]
	if !ok {
		return nil, fault.NotFound("mission %s not found", id)
	}
	copied := *mission
	return &copied, nil
}

func (m *mockMissionRepository) List(ctx context.Context, filters secondary.MissionFilters) ([]*secondary.MissionRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.MissionRecord
	for _, mission := range m.missions {
		if filters.ClientRef != "" && mission.ClientRef() != filters.ClientRef {
			continue
		}
		if filters.TechnicianID != "" && mission.TechnicianID != filters.TechnicianID {
			continue
		}
		if filters.Status != "" && mission.Status != filters.Status {
			continue
		}
		copied := *mission
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockMissionRepository) UpdateStatus(ctx context.Context, change secondary.StatusChange) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	mission, ok := m.missions[change.MissionID]
	if !ok {
		return fault.NotFound("mission %s not found", change.MissionID)
	}
	if mission.Status != change.FromStatus {
		return fault.InvalidTransition("mission %s is %s, not %s", change.MissionID, mission.Status, change.FromStatus)
	}
	mission.Status = change.ToStatus
	if change.AcceptedAt != "" {
		mission.AcceptedAt = change.AcceptedAt
	}
	return nil
}

func (m *mockMissionRepository) GetNextID(ctx context.Context) (string, error) {
	id := fmt.Sprintf("MSN-%03d", m.nextID)
	m.nextID++
	return id, nil
}

// seed stores a record directly, bypassing Create error injection.
func (m *mockMissionRepository) seed(mission *secondary.MissionRecord) {
	if mission.CreatedAt == "" {
		mission.CreatedAt = "2026-01-01T00:00:00Z"
	}
	m.missions[mission.ID] = mission
}

// mockMessageRepository implements secondary.MessageRepository for testing.
type mockMessageRepository struct {
	messages  map[string]*secondary.MessageRecord
	order     []string
	nextID    int
	createErr error
}

func newMockMessageRepository() *mockMessageRepository {
	return &mockMessageRepository{
		messages: make(map[string]*secondary.MessageRecord),
		nextID:   1,
	}
}

func (m *mockMessageRepository) Create(ctx context.Context, message *secondary.MessageRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if message.CreatedAt == "" {
		message.CreatedAt = fmt.Sprintf("2026-01-01T00:00:%02dZ", len(m.order))
	}
	stored := *message
	m.messages[message.ID] = &stored
	m.order = append(m.order, message.ID)
	return nil
}

func (m *mockMessageRepository) GetByID(ctx context.Context, id string) (*secondary.MessageRecord, error) {
	message, ok := m.messages[id]
	if !ok {
		return nil, fault.NotFound("message %s not found", id)
	}
	copied := *message
	return &copied, nil
}

func (m *mockMessageRepository) ListByMission(ctx context.Context, missionID string) ([]*secondary.MessageRecord, error) {
	var result []*secondary.MessageRecord
	for _, id := range m.order {
		if m.messages[id].MissionID == missionID {
			copied := *m.messages[id]
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *mockMessageRepository) MarkThreadRead(ctx context.Context, missionID, readerRef string) (int, error) {
	marked := 0
	for _, message := range m.messages {
		if message.MissionID == missionID && message.SenderRef != readerRef && message.ReadAt == "" {
			message.ReadAt = "2026-01-02T00:00:00Z"
			marked++
		}
	}
	return marked, nil
}

func (m *mockMessageRepository) UnreadCount(ctx context.Context, missionID, readerRef string) (int, error) {
	count := 0
	for _, message := range m.messages {
		if message.MissionID == missionID && message.SenderRef != readerRef && message.ReadAt == "" {
			count++
		}
	}
	return count, nil
}

func (m *mockMessageRepository) GetNextID(ctx context.Context) (string, error) {
	id := fmt.Sprintf("MSG-%03d", m.nextID)
	m.nextID++
	return id, nil
}

// mockProfileRepository implements secondary.ProfileRepository for testing.
type mockProfileRepository struct {
	profiles  map[string]*secondary.ProfileRecord
	skills    map[string][]string // profile ID -> skill names
	brands    map[string][]string // profile ID -> brand names
	nextID    int
	createErr error
	updateErr error
}

func newMockProfileRepository() *mockProfileRepository {
	return &mockProfileRepository{
		profiles: make(map[string]*secondary.ProfileRecord),
		skills:   make(map[string][]string),
		brands:   make(map[string][]string),
		nextID:   1,
	}
}

func (m *mockProfileRepository) Create(ctx context.Context, profile *secondary.ProfileRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if profile.CreatedAt == "" {
		profile.CreatedAt = "2026-01-01T00:00:00Z"
	}
	stored := *profile
	m.profiles[profile.ID] = &stored
	return nil
}

func (m *mockProfileRepository) GetByID(ctx context.Context, id string) (*secondary.ProfileRecord, error) {
	profile, ok := m.profiles[id]
	if !ok {
		return nil, fault.NotFound("profile %s not found", id)
	}
	copied := *profile
	return &copied, nil
}

func (m *mockProfileRepository) Update(ctx context.Context, profile *secondary.ProfileRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	stored, ok := m.profiles[profile.ID]
	if !ok {
		return fault.NotFound("profile %s not found", profile.ID)
	}
	role := stored.Role
	updated := *profile
	updated.Role = role
	m.profiles[profile.ID] = &updated
	return nil
}

func (m *mockProfileRepository) List(ctx context.Context, filters secondary.ProfileFilters) ([]*secondary.ProfileRecord, error) {
	var result []*secondary.ProfileRecord
	for _, profile := range m.profiles {
		if filters.Role != "" && profile.Role != filters.Role {
			continue
		}
		if filters.NameQuery != "" {
			full := strings.ToLower(profile.FirstName + " " + profile.LastName)
			if !strings.Contains(full, strings.ToLower(filters.NameQuery)) {
				continue
			}
		}
		if filters.Skill != "" && !containsName(m.skills[profile.ID], filters.Skill) {
			continue
		}
		if filters.Brand != "" && !containsName(m.brands[profile.ID], filters.Brand) {
			continue
		}
		copied := *profile
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *mockProfileRepository) GetNextID(ctx context.Context) (string, error) {
	id := fmt.Sprintf("PRO-%03d", m.nextID)
	m.nextID++
	return id, nil
}

func (m *mockProfileRepository) seed(profile *secondary.ProfileRecord) {
	if profile.CreatedAt == "" {
		profile.CreatedAt = "2026-01-01T00:00:00Z"
	}
	m.profiles[profile.ID] = profile
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// mockTagRepository implements secondary.TagRepository for testing. It
// shares skill/brand link state with a mockProfileRepository so profile
// searches see the links made through it.
type mockTagRepository struct {
	profiles *mockProfileRepository
	tags     map[string]*secondary.TagRecord // keyed "skill:name" / "brand:name"
	nextID   int
}

func newMockTagRepository(profiles *mockProfileRepository) *mockTagRepository {
	return &mockTagRepository{
		profiles: profiles,
		tags:     make(map[string]*secondary.TagRecord),
		nextID:   1,
	}
}

func (m *mockTagRepository) ensure(kind, name string) (*secondary.TagRecord, error) {
	key := kind + ":" + name
	if tag, ok := m.tags[key]; ok {
		return tag, nil
	}
	prefix := "SKL"
	if kind == "brand" {
		prefix = "BRD"
	}
	tag := &secondary.TagRecord{
		ID:        fmt.Sprintf("%s-%03d", prefix, m.nextID),
		Name:      name,
		CreatedAt: "2026-01-01T00:00:00Z",
	}
	m.nextID++
	m.tags[key] = tag
	return tag, nil
}

func (m *mockTagRepository) find(kind, name string) (*secondary.TagRecord, error) {
	if tag, ok := m.tags[kind+":"+name]; ok {
		return tag, nil
	}
	return nil, fault.NotFound("%s %q not found", kind, name)
}

func (m *mockTagRepository) nameByID(kind, id string) string {
	for key, tag := range m.tags {
		if strings.HasPrefix(key, kind+":") && tag.ID == id {
			return tag.Name
		}
	}
	return ""
}

func (m *mockTagRepository) EnsureSkill(ctx context.Context, name string) (*secondary.TagRecord, error) {
	return m.ensure("skill", name)
}

func (m *mockTagRepository) EnsureBrand(ctx context.Context, name string) (*secondary.TagRecord, error) {
	return m.ensure("brand", name)
}

func (m *mockTagRepository) FindSkill(ctx context.Context, name string) (*secondary.TagRecord, error) {
	return m.find("skill", name)
}

func (m *mockTagRepository) FindBrand(ctx context.Context, name string) (*secondary.TagRecord, error) {
	return m.find("brand", name)
}

func (m *mockTagRepository) LinkSkill(ctx context.Context, profileID, skillID string) error {
	name := m.nameByID("skill", skillID)
	if !containsName(m.profiles.skills[profileID], name) {
		m.profiles.skills[profileID] = append(m.profiles.skills[profileID], name)
	}
	return nil
}

func (m *mockTagRepository) UnlinkSkill(ctx context.Context, profileID, skillID string) error {
	name := m.nameByID("skill", skillID)
	m.profiles.skills[profileID] = removeName(m.profiles.skills[profileID], name)
	return nil
}

func (m *mockTagRepository) LinkBrand(ctx context.Context, profileID, brandID string) error {
	name := m.nameByID("brand", brandID)
	if !containsName(m.profiles.brands[profileID], name) {
		m.profiles.brands[profileID] = append(m.profiles.brands[profileID], name)
	}
	return nil
}

func (m *mockTagRepository) UnlinkBrand(ctx context.Context, profileID, brandID string) error {
	name := m.nameByID("brand", brandID)
	m.profiles.brands[profileID] = removeName(m.profiles.brands[profileID], name)
	return nil
}

func (m *mockTagRepository) SkillsForProfile(ctx context.Context, profileID string) ([]*secondary.TagRecord, error) {
	return m.tagsFor("skill", m.profiles.skills[profileID])
}

func (m *mockTagRepository) BrandsForProfile(ctx context.Context, profileID string) ([]*secondary.TagRecord, error) {
	return m.tagsFor("brand", m.profiles.brands[profileID])
}

func (m *mockTagRepository) tagsFor(kind string, names []string) ([]*secondary.TagRecord, error) {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	var result []*secondary.TagRecord
	for _, name := range sorted {
		if tag, ok := m.tags[kind+":"+name]; ok {
			result = append(result, tag)
		}
	}
	return result, nil
}

func removeName(names []string, name string) []string {
	var out []string
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

// mockNotifier records notifications for assertions.
type mockNotifier struct {
	sent []secondary.Notification
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{}
}

func (m *mockNotifier) Notify(ctx context.Context, n secondary.Notification) {
	m.sent = append(m.sent, n)
}

// ============================================================================
// Seed helpers
// ============================================================================

func seedTechnician(repo *mockProfileRepository, id, firstName string) *secondary.ProfileRecord {
	profile := &secondary.ProfileRecord{
		ID:        id,
		Role:      RoleTechnician,
		FirstName: firstName,
		LastName:  "Tester",
		Email:     strings.ToLower(firstName) + "@example.com",
		Phone:     "555-0101",
		Rate:      85,
	}
	repo.seed(profile)
	return profile
}

func seedClient(repo *mockProfileRepository, id, firstName string) *secondary.ProfileRecord {
	profile := &secondary.ProfileRecord{
		ID:        id,
		Role:      RoleClient,
		FirstName: firstName,
		LastName:  "Tester",
		Email:     strings.ToLower(firstName) + "@example.com",
		Phone:     "555-0202",
	}
	repo.seed(profile)
	return profile
}
