package http

import (
	"context"
	"sort"
	"sync"

	"schoolbook/internal/model"
	"schoolbook/internal/repository"
)

// memStore backs both the HTTP handlers and the identity service in tests.
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]model.User
	teachers map[int64]model.Teacher
	subjects map[int64]model.Subject
	classes  map[int64]model.Class
	students map[int64]model.Student
	parents  map[int64]model.Parent
	marks    map[int64]model.Mark
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]model.User{},
		teachers: map[int64]model.Teacher{},
		subjects: map[int64]model.Subject{},
		classes:  map[int64]model.Class{},
		students: map[int64]model.Student{},
		parents:  map[int64]model.Parent{},
		marks:    map[int64]model.Mark{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func sortedKeys[V any](items map[int64]V) []int64 {
	keys := make([]int64, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Users

func (m *memStore) GetUserByUsername(_ context.Context, username string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := m.GetUserByUsername(ctx, username)
	return err == nil, nil
}

func (m *memStore) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	if exists, _ := m.UsernameExists(ctx, user.Username); exists {
		return model.User{}, repository.ErrDuplicate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = m.id()
	m.users[user.ID] = user
	return user, nil
}

func (m *memStore) SetUserLoginToken(_ context.Context, userID int64, token *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.LoginToken = token
	m.users[userID] = user
	return nil
}

// Teachers

func (m *memStore) ListTeachers(_ context.Context) ([]model.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Teacher{}
	for _, key := range sortedKeys(m.teachers) {
		out = append(out, m.teachers[key])
	}
	return out, nil
}

func (m *memStore) GetTeacher(_ context.Context, teacherID int64) (model.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	teacher, ok := m.teachers[teacherID]
	if !ok {
		return model.Teacher{}, repository.ErrNotFound
	}
	return teacher, nil
}

func (m *memStore) GetTeacherByUsername(_ context.Context, username string) (model.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, teacher := range m.teachers {
		if teacher.Username == username {
			return teacher, nil
		}
	}
	return model.Teacher{}, repository.ErrNotFound
}

func (m *memStore) CreateTeacher(ctx context.Context, teacher model.Teacher) (model.Teacher, error) {
	if _, err := m.GetTeacherByUsername(ctx, teacher.Username); err == nil {
		return model.Teacher{}, repository.ErrDuplicate
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	teacher.ID = m.id()
	m.teachers[teacher.ID] = teacher
	return teacher, nil
}

func (m *memStore) UpdateTeacher(_ context.Context, teacherID int64, update repository.TeacherUpdate) (model.Teacher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	teacher, ok := m.teachers[teacherID]
	if !ok {
		return model.Teacher{}, repository.ErrNotFound
	}
	if update.Name != nil {
		teacher.Name = *update.Name
	}
	if update.Username != nil {
		teacher.Username = *update.Username
	}
	if update.PasswordHash != nil {
		teacher.PasswordHash = *update.PasswordHash
	}
	if update.Email != nil {
		teacher.Email = *update.Email
	}
	if update.Subjects != nil {
		teacher.Subjects = *update.Subjects
	}
	if update.IsAdmin != nil {
		teacher.IsAdmin = *update.IsAdmin
	}
	m.teachers[teacherID] = teacher
	return teacher, nil
}

func (m *memStore) DeleteTeacher(_ context.Context, teacherID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.teachers[teacherID]
	delete(m.teachers, teacherID)
	return ok, nil
}

func (m *memStore) SetTeacherToken(_ context.Context, teacherID int64, token *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	teacher, ok := m.teachers[teacherID]
	if !ok {
		return repository.ErrNotFound
	}
	teacher.Token = token
	m.teachers[teacherID] = teacher
	return nil
}

// Subjects

func (m *memStore) ListSubjects(_ context.Context) ([]model.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Subject{}
	for _, key := range sortedKeys(m.subjects) {
		out = append(out, m.subjects[key])
	}
	return out, nil
}

func (m *memStore) CreateSubject(_ context.Context, name string) (model.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	subject := model.Subject{ID: m.id(), Name: name}
	m.subjects[subject.ID] = subject
	return subject, nil
}

func (m *memStore) UpdateSubject(_ context.Context, subjectID int64, name string) (model.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subjects[subjectID]; !ok {
		return model.Subject{}, repository.ErrNotFound
	}
	subject := model.Subject{ID: subjectID, Name: name}
	m.subjects[subjectID] = subject
	return subject, nil
}

func (m *memStore) DeleteSubject(_ context.Context, subjectID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.subjects[subjectID]
	delete(m.subjects, subjectID)
	return ok, nil
}

// Classes

func (m *memStore) ListClasses(_ context.Context) ([]model.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Class{}
	for _, key := range sortedKeys(m.classes) {
		out = append(out, m.classes[key])
	}
	return out, nil
}

func (m *memStore) CreateClass(_ context.Context, class model.Class) (model.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if class.MainTeacherID != nil {
		if _, ok := m.teachers[*class.MainTeacherID]; !ok {
			return model.Class{}, repository.ErrInvalidReference
		}
	}
	class.ID = m.id()
	m.classes[class.ID] = class
	return class, nil
}

func (m *memStore) UpdateClass(_ context.Context, classID int64, update repository.ClassUpdate) (model.Class, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	class, ok := m.classes[classID]
	if !ok {
		return model.Class{}, repository.ErrNotFound
	}
	if update.Name != nil {
		class.Name = *update.Name
	}
	if update.MainTeacherID != nil {
		if _, ok := m.teachers[*update.MainTeacherID]; !ok {
			return model.Class{}, repository.ErrInvalidReference
		}
		class.MainTeacherID = update.MainTeacherID
	}
	m.classes[classID] = class
	return class, nil
}

func (m *memStore) DeleteClass(_ context.Context, classID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.classes[classID]
	delete(m.classes, classID)
	return ok, nil
}

// Students

func (m *memStore) ListStudents(_ context.Context) ([]model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Student{}
	for _, key := range sortedKeys(m.students) {
		out = append(out, m.students[key])
	}
	return out, nil
}

func (m *memStore) CreateStudent(_ context.Context, student model.Student) (model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if student.ClassID != nil {
		if _, ok := m.classes[*student.ClassID]; !ok {
			return model.Student{}, repository.ErrInvalidReference
		}
	}
	student.ID = m.id()
	m.students[student.ID] = student
	return student, nil
}

func (m *memStore) UpdateStudent(_ context.Context, studentID int64, update repository.StudentUpdate) (model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	student, ok := m.students[studentID]
	if !ok {
		return model.Student{}, repository.ErrNotFound
	}
	if update.Name != nil {
		student.Name = *update.Name
	}
	if update.ClassID != nil {
		if _, ok := m.classes[*update.ClassID]; !ok {
			return model.Student{}, repository.ErrInvalidReference
		}
		student.ClassID = update.ClassID
	}
	m.students[studentID] = student
	return student, nil
}

func (m *memStore) DeleteStudent(_ context.Context, studentID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.students[studentID]
	delete(m.students, studentID)
	return ok, nil
}

// Parents

func (m *memStore) ListParents(_ context.Context) ([]model.Parent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Parent{}
	for _, key := range sortedKeys(m.parents) {
		out = append(out, m.parents[key])
	}
	return out, nil
}

func (m *memStore) CreateParent(_ context.Context, parent model.Parent) (model.Parent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	parent.ID = m.id()
	m.parents[parent.ID] = parent
	return parent, nil
}

func (m *memStore) UpdateParent(_ context.Context, parentID int64, update repository.ParentUpdate) (model.Parent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	parent, ok := m.parents[parentID]
	if !ok {
		return model.Parent{}, repository.ErrNotFound
	}
	if update.Name != nil {
		parent.Name = *update.Name
	}
	if update.Email != nil {
		parent.Email = *update.Email
	}
	m.parents[parentID] = parent
	return parent, nil
}

func (m *memStore) DeleteParent(_ context.Context, parentID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.parents[parentID]
	delete(m.parents, parentID)
	return ok, nil
}

// Marks

func (m *memStore) ListMarks(_ context.Context, filter repository.MarkFilter) ([]model.Mark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Mark{}
	for _, key := range sortedKeys(m.marks) {
		mark := m.marks[key]
		if filter.StudentID != nil && mark.StudentID != *filter.StudentID {
			continue
		}
		if filter.SubjectID != nil && mark.SubjectID != *filter.SubjectID {
			continue
		}
		out = append(out, mark)
	}
	return out, nil
}

func (m *memStore) CreateMark(_ context.Context, mark model.Mark) (model.Mark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, studentOK := m.students[mark.StudentID]
	_, subjectOK := m.subjects[mark.SubjectID]
	_, teacherOK := m.teachers[mark.TeacherID]
	if !studentOK || !subjectOK || !teacherOK {
		return model.Mark{}, repository.ErrInvalidReference
	}
	mark.ID = m.id()
	m.marks[mark.ID] = mark
	return mark, nil
}

func (m *memStore) DeleteMark(_ context.Context, markID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.marks[markID]
	delete(m.marks, markID)
	return ok, nil
}
