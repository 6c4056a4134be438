package dispatcher

// SetListLoader replaces the package-list loader
func SetListLoader(d *Dispatcher, load func(path, marker string) ([]string, error)) {
	d.loadList = load
}
