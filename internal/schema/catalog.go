package schema

// ImportTables is the full-import table list in import order, parents first.
func ImportTables() []*TableSpec {
	return []*TableSpec{
		{Name: "files"},
		{Name: "car_inspection"},
		{Name: "car_inspection_files", Dependencies: []string{"car_inspection", "files"}},
		{Name: "car_inspection_deregistration"},
		{Name: "car_inspection_deregistration_files", Dependencies: []string{"car_inspection_deregistration", "files"}},
		{Name: "ichiban_cars"},
		{Name: "kudguri"},
		{Name: "kudgcst", Dependencies: []string{"kudguri"}},
		{Name: "kudgfry", Dependencies: []string{"kudguri"}},
		{Name: "kudgful", Dependencies: []string{"kudguri"}},
		{Name: "kudgivt", Dependencies: []string{"kudguri"}},
		{Name: "kudgsir", Dependencies: []string{"kudguri"}},
	}
}

// SkipTables are dump tables never imported, by qualified name.
func SkipTables() []string {
	return []string{
		"drizzle.__drizzle_migrations",
		"my_schema.users",
		"public.users",
		"public.uriage",
		"public.uriage_jisha",
		"public.cam_files",
		"public.cam_file_exe",
		"public.cam_file_exe_stage",
		"public.flickr_photo",
		"public.dtako_cars_ichiban_cars",
		"public.car_ins_sheet_ichiban_cars",
		"public.car_ins_sheet_ichiban_cars_a",
		"public.car_inspection_files_a",
		"public.car_inspection_files_b",
	}
}

// inspectionKey identifies one issued vehicle inspection certificate.
var inspectionKey = []string{"ElectCertMgNo", "GrantdateE", "GrantdateY", "GrantdateM", "GrantdateD"}

var grantdateColumns = []string{"GrantdateE", "GrantdateY", "GrantdateM", "GrantdateD"}

// inspectionDateColumns are the fixed-width date fragments of car_inspection.
var inspectionDateColumns = []string{
	"GrantdateE", "GrantdateY", "GrantdateM", "GrantdateD",
	"ElectCertPublishdateE", "ElectCertPublishdateY", "ElectCertPublishdateM", "ElectCertPublishdateD",
	"ReggrantdateE", "ReggrantdateY", "ReggrantdateM", "ReggrantdateD",
	"FirstregistdateE", "FirstregistdateY", "FirstregistdateM",
	"ValidPeriodExpirdateE", "ValidPeriodExpirdateY", "ValidPeriodExpirdateM", "ValidPeriodExpirdateD",
}

// IncrementalTables lists the tables the incremental job diffs, in import order.
func IncrementalTables() []IncrementalSpec {
	return []IncrementalSpec{
		{
			Name:    "files",
			Key:     []string{"uuid"},
			Mapping: ColumnMapping{names: filesColumns},
			Mode:    ModeFileMetadata,
		},
		{
			Name:    "car_inspection",
			Key:     inspectionKey,
			Mapping: ColumnMapping{names: carInspectionColumns},
			Padded:  inspectionDateColumns,
		},
		{
			Name:    "car_inspection_files_a",
			Key:     []string{"uuid"},
			Mapping: ColumnMapping{names: carInspectionFilesColumns},
			Padded:  grantdateColumns,
		},
		{
			Name:    "car_inspection_files_b",
			Key:     []string{"uuid"},
			Mapping: ColumnMapping{names: carInspectionFilesColumns},
			Padded:  grantdateColumns,
		},
		{
			Name:        "car_ins_sheet_ichiban_cars_a",
			Key:         inspectionKey,
			PlainValues: true,
		},
	}
}
