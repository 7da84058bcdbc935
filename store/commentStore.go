// Package store holds the in-memory prayer item registry and the comment forest
// attached to each item. Its types are not safe for concurrent use; callers
// serialize access.
package store

import (
	"sort"
	"strings"
	"time"

	"github.com/PrayerWall/models"
)

type commentNode struct {
	comment  models.Comment
	parent   int
	children []int
	seq      int
}

// commentTree is the arena for one prayer item: every node of the forest keyed by
// id, plus the root ids in insertion order.
type commentTree struct {
	nodes map[int]*commentNode
	roots []int
}

// CommentStore owns the comment forest of every prayer item.
type CommentStore struct {
	clock   func() time.Time
	nextID  int
	nextSeq int
	trees   map[int]*commentTree
}

func NewCommentStore(clock func() time.Time) *CommentStore {
	if clock == nil {
		clock = time.Now
	}
	return &CommentStore{
		clock: clock,
		trees: make(map[int]*commentTree),
	}
}

// Open creates the empty forest for itemID if it does not exist yet.
func (s *CommentStore) Open(itemID int) {
	if _, ok := s.trees[itemID]; ok {
		return
	}
	s.trees[itemID] = &commentTree{nodes: make(map[int]*commentNode)}
}

func (s *CommentStore) tree(itemID int) (*commentTree, error) {
	t, ok := s.trees[itemID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return t, nil
}

// CheckComment reports the error AddComment would return, without mutating.
func (s *CommentStore) CheckComment(itemID int, in models.CommentCreate) error {
	if _, err := s.tree(itemID); err != nil {
		return err
	}
	return checkContent(in)
}

// CheckReply reports the error AddReply would return, without mutating.
func (s *CommentStore) CheckReply(itemID, parentID int, in models.CommentCreate) error {
	t, err := s.tree(itemID)
	if err != nil {
		return err
	}
	if err := checkContent(in); err != nil {
		return err
	}
	if _, ok := t.nodes[parentID]; !ok {
		return models.ErrParentNotFound
	}
	return nil
}

func checkContent(in models.CommentCreate) error {
	if strings.TrimSpace(in.Author_Name) == "" {
		return models.NewValidationError("authorName", "is required")
	}
	if strings.TrimSpace(in.Content) == "" && !in.HasMedia() {
		return models.NewValidationError("content", "must not be empty without an attachment")
	}
	return nil
}

// AddComment places a new root comment at the front of the item's forest.
func (s *CommentStore) AddComment(itemID int, in models.CommentCreate) (models.Comment, error) {
	if err := s.CheckComment(itemID, in); err != nil {
		return models.Comment{}, err
	}
	t := s.trees[itemID]

	node := s.newNode(in, s.clock().Format(models.DateLayout), 0, 0)
	t.nodes[node.comment.Comment_ID] = node
	t.roots = append(t.roots, node.comment.Comment_ID)

	return t.snapshot(node), nil
}

// AddReply appends a reply to parentID, which may sit at any depth of the forest.
func (s *CommentStore) AddReply(itemID, parentID int, in models.CommentCreate) (models.Comment, error) {
	if err := s.CheckReply(itemID, parentID, in); err != nil {
		return models.Comment{}, err
	}
	t := s.trees[itemID]
	parent := t.nodes[parentID]

	node := s.newNode(in, s.clock().Format(models.DateLayout), 0, parentID)
	t.nodes[node.comment.Comment_ID] = node
	parent.children = append(parent.children, node.comment.Comment_ID)

	return t.snapshot(node), nil
}

func (s *CommentStore) newNode(in models.CommentCreate, date string, prayCount, parentID int) *commentNode {
	s.nextID++
	s.nextSeq++

	c := models.Comment{
		Comment_ID:  s.nextID,
		Author_Name: strings.TrimSpace(in.Author_Name),
		Content:     strings.TrimSpace(in.Content),
		Date:        date,
		Pray_Count:  prayCount,
		Images:      append([]string{}, in.Images...),
	}
	if in.Audio != nil {
		audio := *in.Audio
		c.Audio = &audio
	}

	return &commentNode{comment: c, parent: parentID, seq: s.nextSeq}
}

// IncrementPray bumps the pray count of a comment or reply at any depth. The
// owning item's own count is left alone.
func (s *CommentStore) IncrementPray(itemID, commentID int) (int, error) {
	t, err := s.tree(itemID)
	if err != nil {
		return 0, err
	}
	node, ok := t.nodes[commentID]
	if !ok {
		return 0, models.ErrNotFound
	}
	node.comment.Pray_Count++
	return node.comment.Pray_Count, nil
}

// Comments returns the item's forest: roots newest first by date, later insertions
// first on equal dates; replies in insertion order.
func (s *CommentStore) Comments(itemID int) ([]models.Comment, error) {
	t, err := s.tree(itemID)
	if err != nil {
		return nil, err
	}

	roots := make([]*commentNode, 0, len(t.roots))
	for _, id := range t.roots {
		roots = append(roots, t.nodes[id])
	}
	sort.Slice(roots, func(i, j int) bool {
		if roots[i].comment.Date != roots[j].comment.Date {
			return roots[i].comment.Date > roots[j].comment.Date
		}
		return roots[i].seq > roots[j].seq
	})

	out := make([]models.Comment, 0, len(roots))
	for _, n := range roots {
		out = append(out, t.snapshot(n))
	}
	return out, nil
}

// Comment returns one node of the forest with its replies.
func (s *CommentStore) Comment(itemID, commentID int) (models.Comment, error) {
	t, err := s.tree(itemID)
	if err != nil {
		return models.Comment{}, err
	}
	node, ok := t.nodes[commentID]
	if !ok {
		return models.Comment{}, models.ErrNotFound
	}
	return t.snapshot(node), nil
}

// RootCount is the number of root comments stored for the item.
func (s *CommentStore) RootCount(itemID int) (int, error) {
	t, err := s.tree(itemID)
	if err != nil {
		return 0, err
	}
	return len(t.roots), nil
}

// snapshot deep-copies node and its descendants.
func (t *commentTree) snapshot(node *commentNode) models.Comment {
	c := node.comment
	c.Images = append([]string{}, node.comment.Images...)
	if node.comment.Audio != nil {
		audio := *node.comment.Audio
		c.Audio = &audio
	}
	c.Replies = make([]models.Comment, 0, len(node.children))
	for _, id := range node.children {
		c.Replies = append(c.Replies, t.snapshot(t.nodes[id]))
	}
	return c
}

// validateCommentSeeds checks fixture comments before anything is restored.
func validateCommentSeeds(seeds []models.CommentSeed) error {
	for _, seed := range seeds {
		in := models.CommentCreate{Author_Name: seed.Author_Name, Content: seed.Content, Images: seed.Images}
		if err := checkContent(in); err != nil {
			return err
		}
		if _, err := time.Parse(models.DateLayout, seed.Date); err != nil {
			return models.NewValidationError("date", "must be formatted as YYYY-MM-DD")
		}
		if seed.Pray_Count < 0 {
			return models.NewValidationError("prayCount", "must not be negative")
		}
		if err := validateCommentSeeds(seed.Replies); err != nil {
			return err
		}
	}
	return nil
}

// restore loads validated fixture comments for itemID. Seeds are given in display
// order, so the first root is inserted last.
func (s *CommentStore) restore(itemID int, seeds []models.CommentSeed) {
	s.Open(itemID)
	t := s.trees[itemID]

	for i := len(seeds) - 1; i >= 0; i-- {
		t.roots = append(t.roots, s.restoreNode(t, seeds[i], 0))
	}
}

func (s *CommentStore) restoreNode(t *commentTree, seed models.CommentSeed, parentID int) int {
	in := models.CommentCreate{Author_Name: seed.Author_Name, Content: seed.Content, Images: seed.Images}
	node := s.newNode(in, seed.Date, seed.Pray_Count, parentID)
	t.nodes[node.comment.Comment_ID] = node

	for _, reply := range seed.Replies {
		node.children = append(node.children, s.restoreNode(t, reply, node.comment.Comment_ID))
	}
	return node.comment.Comment_ID
}
