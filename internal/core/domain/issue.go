package domain

// Issue is one tracked item as returned by the API.
// Fields holds the decoded JSON value of every requested field and is
// never modified after decoding.
type Issue struct {
	ID     string         `json:"id"`
	Key    string         `json:"key"`
	Self   string         `json:"self,omitempty"`
	Fields map[string]any `json:"fields"`
}

// Field returns the raw value of a field, or nil if absent.
func (i *Issue) Field(key string) any {
	if i == nil || i.Fields == nil {
		return nil
	}
	return i.Fields[key]
}

// Project is a project visible to the authenticated user.
type Project struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// ProjectPage is one page of the project listing.
type ProjectPage struct {
	Projects   []Project
	StartAt    int
	MaxResults int
	IsLast     bool
}

// Transition is a workflow transition available on an issue.
type Transition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	To   struct {
		Name string `json:"name"`
	} `json:"to"`
}

// SearchRequest asks for one page of query results.
type SearchRequest struct {
	JQL        string
	Fields     []string
	MaxResults int
	// PageToken is the cursor returned by the previous page; empty for the first page.
	PageToken string
}

// SearchPage is one page of query results.
type SearchPage struct {
	Issues []Issue
	// NextPageToken is empty when there are no further pages.
	NextPageToken string
}

// SearchResult is the aggregated outcome of a bounded, paged query.
type SearchResult struct {
	Issues []Issue
	// MoreAvailable is true when the limit was reached while the server
	// still reported further pages.
	MoreAvailable bool
}

// IssueInput describes a new issue.
type IssueInput struct {
	ProjectKey  string
	Summary     string
	IssueType   string
	Description string
}

// CreatedIssue is the server's reply to issue creation.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// Comment is a rendered issue comment.
type Comment struct {
	Author  string
	Created string
	Body    string
}

// IssueDetail is the display form of a single issue.
type IssueDetail struct {
	Key         string
	Summary     string
	Type        string
	Status      string
	Priority    string
	Assignee    string
	Reporter    string
	Created     string
	Updated     string
	Description string
	Comments    []Comment
	// TotalComments counts all comments, including those not in Comments.
	TotalComments int
	// Raw is the issue as returned by the API.
	Raw *Issue
}
