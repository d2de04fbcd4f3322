package tree

import "slices"

// ProjectNode is a folder that owns a set of sub projects.
type ProjectNode struct {
	FolderNode
	projects []*ProjectNode
	actions  map[ProjectAction]struct{}
}

func NewProjectNode(projectPath string, opts ...FolderOption) *ProjectNode {
	p := &ProjectNode{
		actions: make(map[ProjectAction]struct{}),
	}
	p.init(ProjectNodeType, projectPath, DefaultProjectPriority, p, opts...)
	return p
}

// ProjectNodes returns the sub projects sorted by path.
func (p *ProjectNode) ProjectNodes() []*ProjectNode {
	return slices.Clone(p.projects)
}

func (p *ProjectNode) FindProject(projectPath string) *ProjectNode {
	return find(p.projects, projectPath)
}

func (p *ProjectNode) AddProjectNodes(projects ...*ProjectNode) {
	p.projects = addChildren(&p.FolderNode, p.projects, projects)
}

func (p *ProjectNode) RemoveProjectNodes(projects ...*ProjectNode) {
	p.projects = removeChildren(&p.FolderNode, p.projects, projects)
}

// SetSupportedActions replaces the actions the project allows on its nodes.
func (p *ProjectNode) SetSupportedActions(actions ...ProjectAction) {
	clear(p.actions)
	for _, action := range actions {
		p.actions[action] = struct{}{}
	}
}

// SupportsAction reports whether action may be applied to n. Nodes managed
// by another project are answered by that project.
func (p *ProjectNode) SupportsAction(action ProjectAction, n Node) bool {
	if n != nil {
		if owner := n.ManagingProject(); owner != nil && owner != p {
			return owner.SupportsAction(action, n)
		}
	}

	_, ok := p.actions[action]
	return ok
}

// SessionNode is the root of the tree. It holds the top level projects.
type SessionNode struct {
	FolderNode
	projects []*ProjectNode
}

func NewSessionNode(opts ...FolderOption) *SessionNode {
	s := &SessionNode{}
	s.init(SessionNodeType, "", DefaultPriority, s, append([]FolderOption{WithDisplayName("session")}, opts...)...)
	return s
}

func (s *SessionNode) ProjectNodes() []*ProjectNode {
	return slices.Clone(s.projects)
}

func (s *SessionNode) FindProject(projectPath string) *ProjectNode {
	return find(s.projects, projectPath)
}

func (s *SessionNode) AddProjectNodes(projects ...*ProjectNode) {
	s.projects = addChildren(&s.FolderNode, s.projects, projects)
}

func (s *SessionNode) RemoveProjectNodes(projects ...*ProjectNode) {
	s.projects = removeChildren(&s.FolderNode, s.projects, projects)
}
