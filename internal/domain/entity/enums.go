package entity

// Visibility 智能体可见范围
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityCampus  Visibility = "campus"
	VisibilityPublic  Visibility = "public"
)

// Role 智能体付费角色
type Role string

const (
	RoleFree Role = "free"
	RolePaid Role = "paid"
)

// AgentType 智能体类型
type AgentType string

const (
	AgentTypeInstructor     AgentType = "instructor"
	AgentTypeITSupport      AgentType = "it_support"
	AgentTypeAdministration AgentType = "administration"
)

// Valid 判断可见范围取值是否合法
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityCampus, VisibilityPublic:
		return true
	}
	return false
}

// Valid 判断角色取值是否合法
func (r Role) Valid() bool {
	return r == RoleFree || r == RolePaid
}

// Valid 判断类型取值是否合法
func (t AgentType) Valid() bool {
	switch t {
	case AgentTypeInstructor, AgentTypeITSupport, AgentTypeAdministration:
		return true
	}
	return false
}

// VisibilityValues 所有合法可见范围
func VisibilityValues() []string {
	return []string{string(VisibilityPrivate), string(VisibilityCampus), string(VisibilityPublic)}
}

// RoleValues 所有合法角色
func RoleValues() []string {
	return []string{string(RoleFree), string(RolePaid)}
}

// AgentTypeValues 所有合法智能体类型
func AgentTypeValues() []string {
	return []string{string(AgentTypeInstructor), string(AgentTypeITSupport), string(AgentTypeAdministration)}
}
