package devserver

import (
	"net/http"
	"path/filepath"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// protected fields are owned by the server and ignored on writes.
var protected = []string{"_id", "author", "comments", "createdAt"}

func (s *Server) collection(c *gin.Context) (*collection, bool) {
	col, ok := s.collections[kindOf(c)]
	if !ok {
		fail(c, http.StatusNotFound, "unknown resource")
	}
	return col, ok
}

// populate replaces author ids with {_id, name} the way the API does.
func (s *Server) populate(d document) document {
	out := d.clone()
	if pid := out.str("author"); pid != "" {
		out["author"] = s.authorRef(pid)
	}
	cs := out.comments()
	for _, cm := range cs {
		if pid := cm.str("author"); pid != "" {
			cm["author"] = s.authorRef(pid)
		}
	}
	out.setComments(cs)
	return out
}

func (s *Server) authorRef(profileID string) document {
	ref := document{"_id": profileID}
	if p, ok := s.collections["profiles"].get(profileID); ok {
		ref["name"] = p.str("name")
	}
	return ref
}

func ownerOf(kind string, d document) string {
	if kind == "profiles" {
		return d.id()
	}
	return d.str("author")
}

func (s *Server) index(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collection(c)
	if !ok {
		return
	}
	docs := col.list()
	for i, d := range docs {
		docs[i] = s.populate(d)
	}
	c.JSON(http.StatusOK, docs)
}

func (s *Server) show(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collection(c)
	if !ok {
		return
	}
	d, ok := col.get(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	c.JSON(http.StatusOK, s.populate(d))
}

func (s *Server) create(c *gin.Context) {
	if kindOf(c) == "profiles" {
		fail(c, http.StatusForbidden, "profiles are created at signup")
		return
	}

	var in document
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	for _, k := range protected {
		delete(in, k)
	}
	in["author"] = currentUser(c).Profile

	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collection(c)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, s.populate(col.insert(in, s.now())))
}

func (s *Server) update(c *gin.Context) {
	var in document
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collection(c)
	if !ok {
		return
	}
	d, ok := col.get(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	if ownerOf(kindOf(c), d) != currentUser(c).Profile {
		fail(c, http.StatusForbidden, "not the author")
		return
	}
	for k, v := range in {
		if !slices.Contains(protected, k) {
			d[k] = v
		}
	}
	c.JSON(http.StatusOK, s.populate(d))
}

func (s *Server) remove(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collection(c)
	if !ok {
		return
	}
	d, ok := col.get(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	if kindOf(c) == "profiles" || ownerOf(kindOf(c), d) != currentUser(c).Profile {
		fail(c, http.StatusForbidden, "not the author")
		return
	}
	col.remove(d.id())
	c.JSON(http.StatusOK, s.populate(d))
}

func (s *Server) createComment(c *gin.Context) {
	var in document
	if err := c.ShouldBindJSON(&in); err != nil || in.str("text") == "" {
		fail(c, http.StatusBadRequest, "text is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collection(c)
	if !ok {
		return
	}
	parent, ok := col.get(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, "not found")
		return
	}

	comment := document{
		"_id":       uuid.NewString(),
		"text":      in.str("text"),
		"author":    currentUser(c).Profile,
		"createdAt": s.now().UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	parent.setComments(append(parent.comments(), comment))

	comment["author"] = s.authorRef(comment.str("author"))
	c.JSON(http.StatusCreated, comment)
}

func (s *Server) findComment(c *gin.Context) (document, []document, int, bool) {
	col, ok := s.collection(c)
	if !ok {
		return nil, nil, 0, false
	}
	parent, ok := col.get(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, "not found")
		return nil, nil, 0, false
	}
	cs := parent.comments()
	i := slices.IndexFunc(cs, func(d document) bool { return d.id() == c.Param("commentId") })
	if i < 0 {
		fail(c, http.StatusNotFound, "comment not found")
		return nil, nil, 0, false
	}
	if cs[i].str("author") != currentUser(c).Profile {
		fail(c, http.StatusForbidden, "not the author")
		return nil, nil, 0, false
	}
	return parent, cs, i, true
}

func (s *Server) updateComment(c *gin.Context) {
	var in document
	if err := c.ShouldBindJSON(&in); err != nil || in.str("text") == "" {
		fail(c, http.StatusBadRequest, "text is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	parent, cs, i, ok := s.findComment(c)
	if !ok {
		return
	}
	cs[i]["text"] = in.str("text")
	parent.setComments(cs)

	out := cs[i].clone()
	out["author"] = s.authorRef(out.str("author"))
	c.JSON(http.StatusOK, out)
}

func (s *Server) deleteComment(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent, cs, i, ok := s.findComment(c)
	if !ok {
		return
	}
	parent.setComments(slices.Delete(cs, i, i+1))
	c.JSON(http.StatusOK, s.populate(parent))
}

func (s *Server) addPhoto(c *gin.Context) {
	if c.Param("id") != currentUser(c).Profile {
		fail(c, http.StatusForbidden, "not your profile")
		return
	}
	file, err := c.FormFile("photo")
	if err != nil {
		fail(c, http.StatusBadRequest, "photo is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.collections["profiles"].get(c.Param("id"))
	if !ok {
		fail(c, http.StatusNotFound, "not found")
		return
	}
	photo := "/uploads/" + uuid.NewString() + "-" + filepath.Base(file.Filename)
	p["photo"] = photo
	c.JSON(http.StatusOK, photo)
}
