package session

// Context is the application state available to a single request
type Context struct {
	Session *Store
	Theme   *ThemeStore
	Storage Storage
}

func NewContext(storage Storage, codec *SnapshotCodec) *Context {
	return &Context{
		Session: Load(storage, codec),
		Theme:   LoadTheme(storage),
		Storage: storage,
	}
}
