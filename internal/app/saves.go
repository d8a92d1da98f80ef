package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/gones/gones/internal/cartridge"
)

// SaveManager keeps battery-backed PRG RAM in <dir>/<rom>.sav files.
type SaveManager struct {
	saveDirectory string
}

// NewSaveManager creates a save manager rooted at saveDirectory.
func NewSaveManager(saveDirectory string) *SaveManager {
	return &SaveManager{saveDirectory: saveDirectory}
}

// SavePath returns the save file for a ROM path.
func (sm *SaveManager) SavePath(romPath string) string {
	base := filepath.Base(romPath)
	return filepath.Join(sm.saveDirectory, strings.TrimSuffix(base, filepath.Ext(base))+".sav")
}

// Load restores cart's PRG RAM from its save file. Carts without a
// battery and missing files are not errors.
func (sm *SaveManager) Load(cart *cartridge.Cartridge, romPath string) error {
	if !cart.HasBattery() {
		return nil
	}
	path := sm.SavePath(romPath)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "open save file")
	}
	defer f.Close()

	if err := cart.LoadRAM(f); err != nil {
		return errors.Wrapf(err, "load %s", path)
	}
	glog.Infof("loaded battery save %s", path)
	return nil
}

// Save writes cart's PRG RAM to its save file.
func (sm *SaveManager) Save(cart *cartridge.Cartridge, romPath string) error {
	if !cart.HasBattery() {
		return nil
	}
	if err := os.MkdirAll(sm.saveDirectory, 0755); err != nil {
		return errors.Wrap(err, "create save directory")
	}

	path := sm.SavePath(romPath)
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrap(err, "create save file")
	}
	if err := cart.SaveRAM(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(err, "close save file")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(err, "replace save file")
	}
	glog.Infof("wrote battery save %s", path)
	return nil
}

// HasSave reports whether a save file exists for romPath.
func (sm *SaveManager) HasSave(romPath string) bool {
	_, err := os.Stat(sm.SavePath(romPath))
	return err == nil
}

// Delete removes the save file for romPath.
func (sm *SaveManager) Delete(romPath string) error {
	err := os.Remove(sm.SavePath(romPath))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "delete save file")
	}
	return nil
}

// GetSaveDirectory returns the directory holding save files.
func (sm *SaveManager) GetSaveDirectory() string {
	return sm.saveDirectory
}
