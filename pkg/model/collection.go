package model

// RequestIndex builds an id -> *Request view over the collection's owned
// requests. Folders refer into this index; the pointers stay valid until the
// Requests slice is reallocated.
func (c *Collection) RequestIndex() map[string]*Request {
	idx := make(map[string]*Request, len(c.Requests))
	for i := range c.Requests {
		idx[c.Requests[i].ID] = &c.Requests[i]
	}
	return idx
}

// FindRequest returns the owned request with the given id, or nil.
func (c *Collection) FindRequest(id string) *Request {
	for i := range c.Requests {
		if c.Requests[i].ID == id {
			return &c.Requests[i]
		}
	}
	return nil
}

// DanglingFolderRefs returns every request id referenced by a folder that
// does not exist among the collection's owned requests. An empty result means
// the tree-consistency invariant holds.
func (c *Collection) DanglingFolderRefs() []string {
	idx := c.RequestIndex()
	var dangling []string
	var walk func(folders []Folder)
	walk = func(folders []Folder) {
		for _, f := range folders {
			for _, id := range f.Requests {
				if _, ok := idx[id]; !ok {
					dangling = append(dangling, id)
				}
			}
			walk(f.Folders)
		}
	}
	walk(c.Folders)
	return dangling
}

// RootRequests returns the owned requests not referenced by any folder.
func (c *Collection) RootRequests() []*Request {
	referenced := make(map[string]bool)
	var walk func(folders []Folder)
	walk = func(folders []Folder) {
		for _, f := range folders {
			for _, id := range f.Requests {
				referenced[id] = true
			}
			walk(f.Folders)
		}
	}
	walk(c.Folders)

	var roots []*Request
	for i := range c.Requests {
		if !referenced[c.Requests[i].ID] {
			roots = append(roots, &c.Requests[i])
		}
	}
	return roots
}

// DeleteFolder removes the folder with the given id from the tree. Only the
// reference list is dropped; the referenced requests stay owned by the
// collection and become root-level. Returns true if a folder was removed.
func (c *Collection) DeleteFolder(id string) bool {
	var remove func(folders []Folder) ([]Folder, bool)
	remove = func(folders []Folder) ([]Folder, bool) {
		for i := range folders {
			if folders[i].ID == id {
				return append(folders[:i:i], folders[i+1:]...), true
			}
			if nested, ok := remove(folders[i].Folders); ok {
				folders[i].Folders = nested
				return folders, true
			}
		}
		return folders, false
	}
	updated, ok := remove(c.Folders)
	if ok {
		c.Folders = updated
	}
	return ok
}

// MergedVariables overlays the environment's variables on top of the
// collection's defaults. env may be nil.
func (c *Collection) MergedVariables(env *Environment) map[string]string {
	merged := make(map[string]string, len(c.Variables))
	for k, v := range c.Variables {
		merged[k] = v
	}
	if env != nil {
		for k, v := range env.Variables {
			merged[k] = v
		}
	}
	return merged
}
