package document

import (
	"github.com/skillup-edu/school-service/internal/repositories"
	"github.com/skillup-edu/school-service/internal/store"
)

// Manager wires every repository to one shared store client. The client is
// injected, never a package-level singleton, so tests and multi-store setups
// can build their own.
type Manager struct {
	users       repositories.UserRepository
	classes     repositories.ClassRepository
	levels      repositories.LevelRepository
	assignments repositories.AssignmentRepository
	submissions repositories.SubmissionRepository
	prospects   repositories.ProspectRepository
	records     repositories.RecordRepository
}

func NewManager(s store.Store) repositories.Manager {
	return &Manager{
		users:       NewUserRepository(s),
		classes:     NewClassRepository(s),
		levels:      NewLevelRepository(s),
		assignments: NewAssignmentRepository(s),
		submissions: NewSubmissionRepository(s),
		prospects:   NewProspectRepository(s),
		records:     NewRecordRepository(s),
	}
}

func (m *Manager) Users() repositories.UserRepository             { return m.users }
func (m *Manager) Classes() repositories.ClassRepository          { return m.classes }
func (m *Manager) Levels() repositories.LevelRepository           { return m.levels }
func (m *Manager) Assignments() repositories.AssignmentRepository { return m.assignments }
func (m *Manager) Submissions() repositories.SubmissionRepository { return m.submissions }
func (m *Manager) Prospects() repositories.ProspectRepository     { return m.prospects }
func (m *Manager) Records() repositories.RecordRepository         { return m.records }
