package perms

import "os"

type memFs struct{}

func (memFs) WriteFile(_ memFs, _ string, _ []byte, _ os.FileMode) error { return nil }

func (memFs) MkdirAll(_ string, _ os.FileMode) error { return nil }

const privatePerm = 0o600

func write(fs memFs) {
	_ = os.WriteFile("a.json", nil, 0o600)    // want `use fileutil.ReadWriteUserPermission instead of hardcoded 0o600 in WriteFile`
	_ = os.WriteFile("b.json", nil, 0644)     // want `use fileutil.ReadWriteUserReadOthers instead of hardcoded 0644 in WriteFile`
	_ = fs.WriteFile(fs, "c.json", nil, 0o644) // want `use fileutil.ReadWriteUserReadOthers instead of hardcoded 0o644 in WriteFile`
	_ = fs.MkdirAll("out", 0o755)             // want `use fileutil.ReadWriteExecuteUserReadExecuteOthers instead of hardcoded 0o755 in MkdirAll`

	_ = os.WriteFile("d.json", nil, privatePerm)
	_ = os.WriteFile("e.json", nil, 0o640)
	_ = os.Chmod("f.json", os.ModePerm)
}
