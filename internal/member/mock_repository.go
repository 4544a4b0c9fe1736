package member

import "time"

// mockRepository is an in-memory stand-in for the SQL repository.
type mockRepository struct {
	nextNo  int
	members []Member
}

func newMockRepository() *mockRepository {
	return &mockRepository{}
}

func (m *mockRepository) createMember(member *Member) error {
	m.nextNo++
	member.MemberNo = m.nextNo
	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now
	m.members = append(m.members, *member)
	return nil
}

func (m *mockRepository) loginIDExists(memberID string) (bool, error) {
	for _, member := range m.members {
		if member.MemberID == memberID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) getMemberByLoginID(memberID string) (*Member, error) {
	for _, member := range m.members {
		if member.MemberID == memberID && !member.IsDeleted {
			found := member
			return &found, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (m *mockRepository) getMemberByNo(memberNo int) (*Member, error) {
	for _, member := range m.members {
		if member.MemberNo == memberNo && !member.IsDeleted {
			found := member
			return &found, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (m *mockRepository) updateMember(member *Member) error {
	member.UpdatedAt = time.Now()
	for i := range m.members {
		if m.members[i].MemberNo == member.MemberNo && !m.members[i].IsDeleted {
			m.members[i] = *member
			return nil
		}
	}
	return nil
}

func (m *mockRepository) softDeleteMember(memberNo int) error {
	for i := range m.members {
		if m.members[i].MemberNo == memberNo && !m.members[i].IsDeleted {
			now := time.Now()
			m.members[i].IsDeleted = true
			m.members[i].DeletedAt = &now
			m.members[i].UpdatedAt = now
			return nil
		}
	}
	return ErrMemberNotFound
}
