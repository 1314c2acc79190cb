package core

// UpdateCheck describes the outcome of re-resolving one pin
type UpdateCheck struct {
	Key             string
	Old             PinnedMod
	New             PinnedMod
	UpdateAvailable bool
}

// UpdateString describes the change for display
func (u UpdateCheck) UpdateString() string {
	return u.Old.File.Filename + " -> " + u.New.File.Filename
}

// UpdatePack re-resolves every pin of the pack with the pack's current version info, replacing the
// pins that resolve. A pin that fails keeps its previous version and is reported in the returned
// *PartialFailure; the other pins are still processed.
func UpdatePack(resolver *Resolver, pack *Pack) ([]UpdateCheck, error) {
	var checks []UpdateCheck
	var failed *PartialFailure
	for _, key := range pack.SortedKeys() {
		old := pack.Mods[key]
		projectID := old.ProjectID
		if projectID == "" {
			projectID = key
		}
		v, err := resolver.Resolve(projectID, pack.VersionInfo)
		if err != nil {
			failed = failed.add(key, err)
			continue
		}
		pin, err := NewPin(v)
		if err != nil {
			failed = failed.add(key, err)
			continue
		}
		if pin.Name == "" {
			pin.Name = old.Name
		}
		pack.Mods[key] = pin
		checks = append(checks, UpdateCheck{
			Key:             key,
			Old:             old,
			New:             pin,
			UpdateAvailable: pin.VersionID != old.VersionID || pin.File.Hash != old.File.Hash,
		})
	}
	return checks, failed.orNil()
}
