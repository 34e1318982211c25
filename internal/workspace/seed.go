package workspace

import (
	"github.com/nhle/flowstate/internal/gamify"
	"github.com/nhle/flowstate/internal/model"
)

// Data is the initial content of a workspace.
type Data struct {
	Users           []model.User
	Projects        []model.Project
	CurrentUserID   string
	ActiveProjectID string
}

// MainUserID is the seeded user a session signs in as.
const MainUserID = "user-1"

// Seed returns the demo workspace: four users and two projects.
func Seed() Data {
	users := []model.User{
		{
			ID: "user-1", Name: "Alex", AvatarURL: avatarURL + "Alex", Role: model.RoleOwner, XP: 250,
			Mentions: []model.Mention{
				{ID: "mention-1", FromUserID: "user-2", Text: "Hey @Alex, can you look at this design mockup?", Location: "Card: Design initial mockups"},
				{ID: "mention-2", FromUserID: "user-4", Text: "@Alex, the API is ready for testing.", Location: "Card: API endpoint for user data", Read: true},
			},
		},
		{ID: "user-2", Name: "Sam", AvatarURL: avatarURL + "Sam", Role: model.RoleEditor, XP: 550},
		{ID: "user-3", Name: "Jamie", AvatarURL: avatarURL + "Jamie", Role: model.RoleViewer, XP: 80},
		{ID: "user-4", Name: "Taylor", AvatarURL: avatarURL + "Taylor", Role: model.RoleAdmin, XP: 120},
	}
	memberIDs := make([]string, len(users))
	for i := range users {
		users[i] = gamify.Normalize(users[i])
		memberIDs[i] = users[i].ID
	}

	phoenix := model.Project{
		ID:        "proj-1",
		Name:      "Phoenix Initiative",
		IconURL:   "https://picsum.photos/seed/phoenix/40/40",
		MemberIDs: memberIDs,
		ChatHistory: []model.ChatMessage{
			{ID: "chat-1", AuthorID: "user-2", Text: "Hey team, kickoff for Phoenix is next Monday!", Timestamp: "10:30"},
			{ID: "chat-2", AuthorID: "user-4", Text: "Awesome! I have the repo structure ready.", Timestamp: "10:31"},
			{ID: "chat-3", AuthorID: "user-1", Text: "Great. Let's sync up on the component library choice tomorrow.", Timestamp: "10:32"},
		},
		AuditLog: []model.AuditLogEntry{
			{ID: "log-1", ActorID: "user-1", Action: "Created Page", Target: "Project Phoenix Overview", Timestamp: "2 days ago"},
			{ID: "log-2", ActorID: "user-2", Action: "Moved Card", Target: "Design initial mockups to To Do", Timestamp: "1 day ago"},
			{ID: "log-3", ActorID: "user-4", Action: "Changed Role", Target: "Jamie to Viewer", Timestamp: "3 hours ago"},
		},
		Pages: []model.Page{
			{
				ID:      "page-1",
				Title:   "Project Phoenix Overview",
				Content: "<h1>Project Phoenix Overview</h1><p>This document outlines the main goals, scope, and timeline for the Phoenix Initiative. Our primary objective is to rebuild the customer-facing portal from the ground up using modern technologies.</p><h2>Goals</h2><ul><li>Improve performance by 50%</li><li>Enhance user experience with a new UI/UX design</li><li>Integrate AI-powered features for personalization</li></ul>",
				StickyNotes: []model.StickyNote{
					{ID: "note-1", Content: "Need to double-check these stats before the client presentation!", AuthorID: "user-2", Position: model.Position{X: 85, Y: 120}},
				},
				Children: []model.Page{
					{ID: "page-1-1", Title: "Technical Specification", Content: "<h2>Technical Specification</h2><p>The new portal will be built using a micro-frontend architecture with React.js and TypeScript.</p>"},
					{ID: "page-1-2", Title: "Marketing Plan", Content: "<h2>Marketing Plan</h2><p>Our go-to-market strategy will focus on digital channels and existing customer engagement.</p>"},
				},
			},
			{ID: "page-2", Title: "Meeting Notes", Content: "<h1>Meeting Notes</h1><p>Collection of all project-related meeting notes.</p>"},
		},
		Kanban: model.Board{Columns: []model.KanbanColumn{
			{ID: "col-1", Title: "Backlog", Cards: []model.KanbanCard{
				{ID: "card-1", Title: "Setup project repository", Description: "Initialize GitHub repo with starter code.", Labels: []string{"setup", "devops"}, AssigneeID: "user-4", Priority: model.PriorityHigh, DueDate: "2024-08-01", Reactions: []model.Reaction{{Emoji: "👍", UserIDs: []string{"user-2", "user-4"}}}},
				{ID: "card-2", Title: "Design initial mockups", Description: "Create Figma designs for the main dashboard.", Labels: []string{"design", "ux"}, AssigneeID: "user-2", Priority: model.PriorityHigh, DueDate: "2024-08-05", Reactions: []model.Reaction{}, IssueURL: "https://github.com/example/phoenix/issues/1"},
			}},
			{ID: "col-2", Title: "To Do", Cards: []model.KanbanCard{
				{ID: "card-3", Title: "Develop login page component", Description: "Build the React component for user authentication.", Labels: []string{"frontend", "auth"}, AssigneeID: "user-1", Priority: model.PriorityMedium, DueDate: "2024-08-10", Reactions: []model.Reaction{}},
			}},
			{ID: "col-3", Title: "In Progress", Cards: []model.KanbanCard{
				{ID: "card-4", Title: "API endpoint for user data", Description: "Create the backend service to fetch user profiles.", Labels: []string{"backend", "api"}, AssigneeID: "user-4", Priority: model.PriorityMedium, DueDate: "2024-08-12", Reactions: []model.Reaction{{Emoji: "🚀", UserIDs: []string{"user-1"}}}},
			}},
			{ID: "col-4", Title: "Done", Cards: []model.KanbanCard{
				{ID: "card-5", Title: "Choose a component library", Description: "Decided to use Tailwind CSS for styling.", Labels: []string{"research", "frontend"}, AssigneeID: "user-1", Priority: model.PriorityLow, DueDate: "2024-07-20", Reactions: []model.Reaction{}},
			}},
		}},
	}

	aquila := model.Project{
		ID:        "proj-2",
		Name:      "Aquila Project",
		IconURL:   "https://picsum.photos/seed/aquila/40/40",
		MemberIDs: memberIDs,
		Pages: []model.Page{
			{ID: "page-3", Title: "Aquila Research Docs", Content: "<h1>Aquila Research Documentation</h1><p>Central hub for all research findings related to Project Aquila.</p>"},
		},
		Kanban: model.Board{Columns: []model.KanbanColumn{
			{ID: "col-5", Title: "Ideas", Cards: []model.KanbanCard{}},
			{ID: "col-6", Title: "In Progress", Cards: []model.KanbanCard{}},
			{ID: "col-7", Title: "Completed", Cards: []model.KanbanCard{}},
		}},
	}

	return Data{
		Users:           users,
		Projects:        []model.Project{phoenix, aquila},
		CurrentUserID:   MainUserID,
		ActiveProjectID: phoenix.ID,
	}
}

// PageTemplates are the starting points offered for new pages.
var PageTemplates = []model.PageTemplate{
	{ID: "blank", Name: "Blank Page", Description: "Start with a clean slate.", Content: "<p>Start writing your document here...</p>"},
	{
		ID:          "meeting-notes",
		Name:        "Meeting Notes",
		Description: "A structured format for meeting minutes.",
		Content:     "<h1>Meeting Title</h1><h2>Attendees</h2><ul><li></li></ul><h2>Agenda</h2><ol><li></li></ol><h2>Action Items</h2><ul><li></li></ul>",
	},
}
