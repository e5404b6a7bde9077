package schema

import "strings"

// ColumnMapping renames legacy dump columns to the multi-tenant schema's names.
// Columns without an entry keep their name.
type ColumnMapping struct {
	names map[string]string
}

// Map returns the target name of col.
func (m ColumnMapping) Map(col string) string {
	if to, ok := m.names[col]; ok {
		return to
	}
	return col
}

// MapAll maps every column, preserving order.
func (m ColumnMapping) MapAll(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = m.Map(c)
	}
	return out
}

// Len reports the number of renamed columns.
func (m ColumnMapping) Len() int {
	return len(m.names)
}

// MappingFor picks the mapping of the family table belongs to.
func MappingFor(table string) ColumnMapping {
	switch {
	case strings.HasPrefix(table, "kudg"):
		return ColumnMapping{names: kudgColumns}
	case table == "files":
		return ColumnMapping{names: filesColumns}
	case table == "ichiban_cars":
		return ColumnMapping{names: ichibanCarsColumns}
	case strings.HasPrefix(table, "car_inspection"):
		return ColumnMapping{names: carInspectionColumns}
	}
	return ColumnMapping{}
}

var filesColumns = map[string]string{
	"created": "created_at",
	"deleted": "deleted_at",
}

var ichibanCarsColumns = map[string]string{
	"name_R": "name_r",
}

var carInspectionColumns = map[string]string{
	"created":  "created_at",
	"Modified": "modified_at",
	"modified": "modified_at",
	"deleted":  "deleted_at",
	"fileUuid": "file_uuid",
}

// carInspectionFilesColumns is the narrower set used when diffing the _a/_b file tables.
var carInspectionFilesColumns = map[string]string{
	"created":  "created_at",
	"modified": "modified_at",
	"deleted":  "deleted_at",
}

var kudgColumns = map[string]string{
	"unkouNo":          "unkou_no",
	"unkouDate":        "unkou_date",
	"kudguriUuid":      "kudguri_uuid",
	"readDate":         "read_date",
	"officeCd":         "office_cd",
	"officeName":       "office_name",
	"vehicleCd":        "vehicle_cd",
	"vehicleName":      "vehicle_name",
	"driverCd1":        "driver_cd1",
	"driverName1":      "driver_name1",
	"driverCd2":        "driver_cd2",
	"driverName2":      "driver_name2",
	"targetDriverType": "target_driver_type",
	"targetDriverCd":   "target_driver_cd",
	"targetDriverName": "target_driver_name",
	"startDatetime":    "start_datetime",
	"endDatetime":      "end_datetime",
	"eventCd":          "event_cd",
	"eventName":        "event_name",
	"startMileage":     "start_mileage",
	"endMileage":       "end_mileage",
	"sectionTime":      "section_time",
	"sectionDistance":  "section_distance",
	"startCityCd":      "start_city_cd",
	"startCityName":    "start_city_name",
	"endCityCd":        "end_city_cd",
	"endCityName":      "end_city_name",
	"startPlaceCd":     "start_place_cd",
	"startPlaceName":   "start_place_name",
	"endPlaceCd":       "end_place_cd",
	"endPlaceName":     "end_place_name",
	"startGpsValid":    "start_gps_valid",
	"startGpsLat":      "start_gps_lat",
	"startGpsLng":      "start_gps_lng",
	"endGpsValid":      "end_gps_valid",
	"endGpsLat":        "end_gps_lat",
	"endGpsLng":        "end_gps_lng",
	"overLimitMax":     "over_limit_max",
	"created":          "created_at",
	"deleted":          "deleted_at",

	// kudgcst
	"ferryCompanyCd":       "ferry_company_cd",
	"ferryCompanyName":     "ferry_company_name",
	"boardingPlaceCd":      "boarding_place_cd",
	"boardingPlaceName":    "boarding_place_name",
	"tripNumber":           "trip_number",
	"dropoffPlaceCd":       "dropoff_place_cd",
	"dropoffPlaceName":     "dropoff_place_name",
	"settlementType":       "settlement_type",
	"settlementTypeName":   "settlement_type_name",
	"standardFare":         "standard_fare",
	"contractFare":         "contract_fare",
	"ferryVehicleType":     "ferry_vehicle_type",
	"ferryVehicleTypeName": "ferry_vehicle_type_name",
	"assumedDistance":      "assumed_distance",

	// kudgfry
	"relevantDatetime":          "relevant_datetime",
	"refuelInspectCategory":     "refuel_inspect_category",
	"refuelInspectCategoryName": "refuel_inspect_category_name",
	"refuelInspectType":         "refuel_inspect_type",
	"refuelInspectTypeName":     "refuel_inspect_type_name",
	"refuelInspectKind":         "refuel_inspect_kind",
	"refuelInspectKindName":     "refuel_inspect_kind_name",
	"refillAmount":              "refill_amount",
	"ownOtherType":              "own_other_type",
	"meterValue":                "meter_value",

	// kudgivt
	"clockInDatetime":              "clock_in_datetime",
	"clockOutDatetime":             "clock_out_datetime",
	"departureDatetime":            "departure_datetime",
	"returnDatetime":               "return_datetime",
	"departureMeter":               "departure_meter",
	"returnMeter":                  "return_meter",
	"totalMileage":                 "total_mileage",
	"destinationCityName":          "destination_city_name",
	"destinationPlaceName":         "destination_place_name",
	"actualMileage":                "actual_mileage",
	"localDriveTime":               "local_drive_time",
	"expressDriveTime":             "express_drive_time",
	"bypassDriveTime":              "bypass_drive_time",
	"actualDriveTime":              "actual_drive_time",
	"emptyDriveTime":               "empty_drive_time",
	"work1Time":                    "work1_time",
	"work2Time":                    "work2_time",
	"work3Time":                    "work3_time",
	"work4Time":                    "work4_time",
	"work5Time":                    "work5_time",
	"work6Time":                    "work6_time",
	"work7Time":                    "work7_time",
	"work8Time":                    "work8_time",
	"work9Time":                    "work9_time",
	"work10Time":                   "work10_time",
	"state1Distance":               "state1_distance",
	"state1Time":                   "state1_time",
	"state2Distance":               "state2_distance",
	"state2Time":                   "state2_time",
	"state3Distance":               "state3_distance",
	"state3Time":                   "state3_time",
	"state4Distance":               "state4_distance",
	"state4Time":                   "state4_time",
	"state5Distance":               "state5_distance",
	"state5Time":                   "state5_time",
	"ownMainFuel":                  "own_main_fuel",
	"ownMainAdditive":              "own_main_additive",
	"ownConsumable":                "own_consumable",
	"otherMainFuel":                "other_main_fuel",
	"otherMainAdditive":            "other_main_additive",
	"otherConsumable":              "other_consumable",
	"localSpeedOverMax":            "local_speed_over_max",
	"localSpeedOverTime":           "local_speed_over_time",
	"localSpeedOverCount":          "local_speed_over_count",
	"expressSpeedOverMax":          "express_speed_over_max",
	"expressSpeedOverTime":         "express_speed_over_time",
	"expressSpeedOverCount":        "express_speed_over_count",
	"dedicatedSpeedOverMax":        "dedicated_speed_over_max",
	"dedicatedSpeedOverTime":       "dedicated_speed_over_time",
	"dedicatedSpeedOverCount":      "dedicated_speed_over_count",
	"idlingTime":                   "idling_time",
	"idlingTimeCount":              "idling_time_count",
	"rotationOverMax":              "rotation_over_max",
	"rotationOverCount":            "rotation_over_count",
	"rotationOverTime":             "rotation_over_time",
	"rapidAccelCount1":             "rapid_accel_count1",
	"rapidAccelCount2":             "rapid_accel_count2",
	"rapidAccelCount3":             "rapid_accel_count3",
	"rapidAccelCount4":             "rapid_accel_count4",
	"rapidAccelCount5":             "rapid_accel_count5",
	"rapidAccelMax":                "rapid_accel_max",
	"rapidAccelMaxSpeed":           "rapid_accel_max_speed",
	"rapidDecelCount1":             "rapid_decel_count1",
	"rapidDecelCount2":             "rapid_decel_count2",
	"rapidDecelCount3":             "rapid_decel_count3",
	"rapidDecelCount4":             "rapid_decel_count4",
	"rapidDecelCount5":             "rapid_decel_count5",
	"rapidDecelMax":                "rapid_decel_max",
	"rapidDecelMaxSpeed":           "rapid_decel_max_speed",
	"rapidCurveCount1":             "rapid_curve_count1",
	"rapidCurveCount2":             "rapid_curve_count2",
	"rapidCurveCount3":             "rapid_curve_count3",
	"rapidCurveCount4":             "rapid_curve_count4",
	"rapidCurveCount5":             "rapid_curve_count5",
	"rapidCurveMax":                "rapid_curve_max",
	"rapidCurveMaxSpeed":           "rapid_curve_max_speed",
	"continuousDriveOverCount":     "continuous_drive_over_count",
	"continuousDriveMaxTime":       "continuous_drive_max_time",
	"continuousDriveTotalTime":     "continuous_drive_total_time",
	"waveDriveCount":               "wave_drive_count",
	"waveDriveMaxTime":             "wave_drive_max_time",
	"waveDriveMaxSpeedDiff":        "wave_drive_max_speed_diff",
	"localSpeedScore":              "local_speed_score",
	"expressSpeedScore":            "express_speed_score",
	"dedicatedSpeedScore":          "dedicated_speed_score",
	"localDistanceScore":           "local_distance_score",
	"expressDistanceScore":         "express_distance_score",
	"dedicatedDistanceScore":       "dedicated_distance_score",
	"rapidAccelScore":              "rapid_accel_score",
	"rapidDecelScore":              "rapid_decel_score",
	"rapidCurveScore":              "rapid_curve_score",
	"actualLowSpeedRotationScore":  "actual_low_speed_rotation_score",
	"actualHighSpeedRotationScore": "actual_high_speed_rotation_score",
	"emptyLowSpeedRotationScore":   "empty_low_speed_rotation_score",
	"emptyHighSpeedRotationScore":  "empty_high_speed_rotation_score",
	"idlingScore":                  "idling_score",
	"continuousDriveScore":         "continuous_drive_score",
	"waveDriveScore":               "wave_drive_score",
	"safetyScore":                  "safety_score",
	"economyScore":                 "economy_score",
	"totalScore":                   "total_score",
}
