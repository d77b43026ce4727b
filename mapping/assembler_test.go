package mapping

import (
	"errors"
	"testing"
	"time"
)

func fixedAssembler(year int) *Assembler {
	return &Assembler{now: func() time.Time {
		return time.Date(year, time.June, 15, 12, 0, 0, 0, time.UTC)
	}}
}

func dependentsOf(rec *AssembledRecord, kind string) []map[string]interface{} {
	var out []map[string]interface{}
	for _, d := range rec.Dependents {
		if d.Kind == kind {
			out = append(out, d.Fields)
		}
	}
	return out
}

func TestAssembleMissingRequiredFields(t *testing.T) {
	a := NewAssembler()

	rec, err := a.Assemble(RawRecord{"Выручка предприятия 2023": "100"})
	if rec != nil {
		t.Fatalf("при отсутствии ИНН и наименования сущности не создаются, получено %v", rec)
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("ожидалась ValidationError, получено %v", err)
	}
	if len(verr.MissingFields) != 2 {
		t.Errorf("ожидались оба обязательных поля, получено %v", verr.MissingFields)
	}
}

func TestAssembleMissingOnlyName(t *testing.T) {
	a := NewAssembler()

	_, err := a.Assemble(RawRecord{"ИНН": "1234567890"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("ожидалась ValidationError, получено %v", err)
	}
	if len(verr.MissingFields) != 1 || verr.MissingFields[0] != "name" {
		t.Errorf("MissingFields = %v, ожидалось [name]", verr.MissingFields)
	}
}

func TestAssembleEndToEnd(t *testing.T) {
	a := fixedAssembler(2025)

	rec, err := a.Assemble(RawRecord{
		"ИНН":                                 "1234567890",
		"Наименование организации":            "ООО Ромашка",
		"Выручка предприятия, тыс. руб. 2023": "1000",
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if rec.Organization["inn"] != "1234567890" {
		t.Errorf("inn = %v", rec.Organization["inn"])
	}
	if rec.Organization["name"] != "ООО Ромашка" {
		t.Errorf("name = %v", rec.Organization["name"])
	}

	fin := dependentsOf(rec, "financial-indicators")
	if len(fin) != 1 {
		t.Fatalf("ожидался 1 финансовый показатель, получено %d", len(fin))
	}
	if fin[0]["year"] != 2023 {
		t.Errorf("year = %v", fin[0]["year"])
	}
	if fin[0]["revenue"] != 1000.0 {
		t.Errorf("revenue = %v", fin[0]["revenue"])
	}
	if fin[0]["net_profit"] != nil {
		t.Errorf("net_profit = %v, ожидался nil", fin[0]["net_profit"])
	}

	// Налоговых данных нет — ни одной записи
	if taxes := dependentsOf(rec, "taxes"); len(taxes) != 0 {
		t.Errorf("ожидалось 0 налоговых записей, получено %d", len(taxes))
	}
}

func TestAssembleINNNormalization(t *testing.T) {
	a := NewAssembler()

	rec, err := a.Assemble(RawRecord{
		"ИНН":                      "77-12/3456",
		"Наименование организации": "Test Co",
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if rec.Organization["inn"] != "77123456" {
		t.Errorf("inn = %v, ожидалось 77123456", rec.Organization["inn"])
	}
}

func TestAssembleFinancialYearUnion(t *testing.T) {
	a := NewAssembler()

	rec, err := a.Assemble(RawRecord{
		"ИНН":                      "1234567890",
		"Наименование организации": "ООО Ромашка",
		"Выручка предприятия, тыс. руб. 2021": "100",
		"Чистая прибыль, тыс. руб. 2022":      "50",
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	fin := dependentsOf(rec, "financial-indicators")
	if len(fin) != 2 {
		t.Fatalf("ожидалось 2 записи (объединение лет), получено %d", len(fin))
	}
	// Годы отсортированы
	if fin[0]["year"] != 2021 || fin[1]["year"] != 2022 {
		t.Errorf("годы = %v, %v", fin[0]["year"], fin[1]["year"])
	}
	if fin[0]["revenue"] != 100.0 || fin[0]["net_profit"] != nil {
		t.Errorf("2021: revenue=%v net_profit=%v", fin[0]["revenue"], fin[0]["net_profit"])
	}
	if fin[1]["revenue"] != nil || fin[1]["net_profit"] != 50.0 {
		t.Errorf("2022: revenue=%v net_profit=%v", fin[1]["revenue"], fin[1]["net_profit"])
	}
}

func TestAssembleTaxes(t *testing.T) {
	a := NewAssembler()

	rec, err := a.Assemble(RawRecord{
		"ИНН":                      "1234567890",
		"Наименование организации": "ООО Ромашка",
		"Налог на прибыль 2022":    "10,5",
		"НДФЛ 2022":                "3",
		"Земельный налог 2023":     "1",
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	taxes := dependentsOf(rec, "taxes")
	if len(taxes) != 2 {
		t.Fatalf("ожидалось 2 налоговые записи, получено %d", len(taxes))
	}
	if taxes[0]["year"] != 2022 || taxes[0]["profit_tax"] != 10.5 || taxes[0]["personal_income_tax"] != 3.0 {
		t.Errorf("2022: %v", taxes[0])
	}
	if taxes[1]["year"] != 2023 || taxes[1]["land_tax"] != 1.0 || taxes[1]["profit_tax"] != nil {
		t.Errorf("2023: %v", taxes[1])
	}
}

func TestAssembleSingletonsAlwaysEmitted(t *testing.T) {
	a := NewAssembler()

	rec, err := a.Assemble(RawRecord{
		"ИНН":                      "1234567890",
		"Наименование организации": "ООО Ромашка",
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	for _, kind := range []string{"property-land", "addresses", "production", "support", "industries"} {
		if got := dependentsOf(rec, kind); len(got) != 1 {
			t.Errorf("%s: ожидалась ровно 1 запись, получено %d", kind, len(got))
		}
	}
}

func TestAssembleOkvedsGated(t *testing.T) {
	a := NewAssembler()

	// Без кодов — ни одной записи
	rec, _ := a.Assemble(RawRecord{
		"ИНН":                      "1234567890",
		"Наименование организации": "ООО Ромашка",
	})
	if got := dependentsOf(rec, "okveds"); len(got) != 0 {
		t.Errorf("ожидалось 0 ОКВЭД, получено %d", len(got))
	}

	// Основной и производственный
	rec, _ = a.Assemble(RawRecord{
		"ИНН":                      "1234567890",
		"Наименование организации": "ООО Ромашка",
		"Основной ОКВЭД (СПАРК)":   "25.11",
		"Производственный ОКВЭД":   "28.99",
	})
	okveds := dependentsOf(rec, "okveds")
	if len(okveds) != 2 {
		t.Fatalf("ожидалось 2 ОКВЭД, получено %d", len(okveds))
	}
	if okveds[0]["okved_type"] != "main_spark" || okveds[0]["code"] != "25.11" {
		t.Errorf("основной: %v", okveds[0])
	}
	if okveds[1]["okved_type"] != "production" || okveds[1]["code"] != "28.99" {
		t.Errorf("производственный: %v", okveds[1])
	}

	// Только описание без кода — запись все равно создается
	rec, _ = a.Assemble(RawRecord{
		"ИНН":                      "1234567890",
		"Наименование организации": "ООО Ромашка",
		"Вид деятельности по основному ОКВЭД (СПАРК)": "Производство металлоконструкций",
	})
	okveds = dependentsOf(rec, "okveds")
	if len(okveds) != 1 || okveds[0]["code"] != nil {
		t.Errorf("ОКВЭД по описанию: %v", okveds)
	}
}

func TestAssembleContactsGated(t *testing.T) {
	a := NewAssembler()

	rec, _ := a.Assemble(RawRecord{
		"ИНН":                      "1234567890",
		"Наименование организации": "ООО Ромашка",
	})
	if got := dependentsOf(rec, "contacts"); len(got) != 0 {
		t.Errorf("ожидалось 0 контактов, получено %d", len(got))
	}

	rec, _ = a.Assemble(RawRecord{
		"ИНН":                      "1234567890",
		"Наименование организации": "ООО Ромашка",
		"Номер телефона":           "+7 (495) 123-45-67",
	})
	contacts := dependentsOf(rec, "contacts")
	if len(contacts) != 1 {
		t.Fatalf("ожидался 1 контакт, получено %d", len(contacts))
	}
	if contacts[0]["contact_type"] != "general" {
		t.Errorf("contact_type = %v", contacts[0]["contact_type"])
	}
}

func TestAssembleCompanySizeFallbackYear(t *testing.T) {
	a := fixedAssembler(2026)

	rec, err := a.Assemble(RawRecord{
		"ИНН":                      "1234567890",
		"Наименование организации": "ООО Ромашка",
		"Размер предприятия (итог)": "Среднее",
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	sizes := dependentsOf(rec, "company-sizes")
	if len(sizes) != 1 {
		t.Fatalf("ожидалась 1 запись о размере, получено %d", len(sizes))
	}
	if sizes[0]["year"] != 2026 {
		t.Errorf("year = %v, ожидался текущий календарный", sizes[0]["year"])
	}
	if sizes[0]["size_final"] != "Среднее" {
		t.Errorf("size_final = %v", sizes[0]["size_final"])
	}
}

func TestAssembleCompanySizeYearSeries(t *testing.T) {
	a := NewAssembler()

	rec, _ := a.Assemble(RawRecord{
		"ИНН":                      "1234567890",
		"Наименование организации": "ООО Ромашка",
		"Размер предприятия (по численности) 2022": "Малое",
		"Размер предприятия (по численности) 2023": "Среднее",
	})
	sizes := dependentsOf(rec, "company-sizes")
	if len(sizes) != 2 {
		t.Fatalf("ожидалось 2 записи, получено %d", len(sizes))
	}
	if sizes[0]["size_by_employees"] != "Малое" || sizes[1]["size_by_employees"] != "Среднее" {
		t.Errorf("размеры: %v / %v", sizes[0], sizes[1])
	}
}

func TestAssembleProductionLists(t *testing.T) {
	a := fixedAssembler(2025)

	rec, err := a.Assemble(RawRecord{
		"ИНН":                      "1234567890",
		"Наименование организации": "ООО Ромашка",
		"Перечень производимой продукции по кодам ОКПД 2":    "25.11, 25.12, 28.99",
		"Перечень государств куда экспортируется продукция":  "Китай; Казахстан",
		"Наличие госзаказа":                                  "Да",
		"Наличие поставок продукции на экспорт":              "нет",
		"Выручка предприятия, тыс. руб. 2021":                "100",
		"Выручка предприятия, тыс. руб. 2023":                "200",
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	prod := dependentsOf(rec, "production")[0]
	if prod["okpd2_products"] != "25.11; 25.12; 28.99" {
		t.Errorf("okpd2_products = %v", prod["okpd2_products"])
	}
	if prod["export_countries"] != "Китай; Казахстан" {
		t.Errorf("export_countries = %v", prod["export_countries"])
	}
	if prod["government_order"] != true {
		t.Errorf("government_order = %v", prod["government_order"])
	}
	if prod["export_supplies"] != false {
		t.Errorf("export_supplies = %v", prod["export_supplies"])
	}
	// Год продукции — максимальный год ряда выручки
	if prod["year"] != 2023 {
		t.Errorf("year = %v, ожидался 2023", prod["year"])
	}
}

func TestAssembleProductionYearDefault(t *testing.T) {
	a := fixedAssembler(2024)

	rec, _ := a.Assemble(RawRecord{
		"ИНН":                      "1234567890",
		"Наименование организации": "ООО Ромашка",
	})
	prod := dependentsOf(rec, "production")[0]
	if prod["year"] != 2024 {
		t.Errorf("year = %v, ожидался текущий календарный", prod["year"])
	}
}

func TestAssemblePropertyLandNestedSection(t *testing.T) {
	a := NewAssembler()

	rec, err := a.Assemble(RawRecord{
		"ИНН":                      "1234567890",
		"Наименование организации": "ООО Ромашка",
		"Имущественно-земельный комплекс": map[string]interface{}{
			"Кадастровый номер ЗУ": "77:01:0001001:1",
			"Площадь ЗУ (га)":      "2,5",
		},
		// Верхний уровень не должен перекрыть вложенную секцию
		"Кадастровый номер ЗУ": "99:99:9999999:9",
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	land := dependentsOf(rec, "property-land")[0]
	if land["land_cadastral_number"] != "77:01:0001001:1" {
		t.Errorf("land_cadastral_number = %v", land["land_cadastral_number"])
	}
	if land["land_area"] != 2.5 {
		t.Errorf("land_area = %v", land["land_area"])
	}
}

func TestAssembleAddressCoordinates(t *testing.T) {
	a := NewAssembler()

	rec, _ := a.Assemble(RawRecord{
		"ИНН":                      "1234567890",
		"Наименование организации": "ООО Ромашка",
		"Юридический адрес":        "г. Москва, ул. Ленина, д. 1",
		"Координаты": map[string]interface{}{
			"Широта":  "55,7558",
			"Долгота": "37,6173",
			"Округ":   "ЦАО",
		},
	})

	addr := dependentsOf(rec, "addresses")[0]
	if addr["full_address"] != "г. Москва, ул. Ленина, д. 1" {
		t.Errorf("full_address = %v", addr["full_address"])
	}
	if addr["latitude"] != 55.7558 || addr["longitude"] != 37.6173 {
		t.Errorf("координаты: %v, %v", addr["latitude"], addr["longitude"])
	}
	if addr["district"] != "ЦАО" {
		t.Errorf("district = %v", addr["district"])
	}
}

func TestAssembleInvestmentExportAliases(t *testing.T) {
	a := NewAssembler()

	rec, _ := a.Assemble(RawRecord{
		"ИНН":                      "1234567890",
		"Наименование организации": "ООО Ромашка",
		"Инвестиции Москвы 2022":   "300",
		"Объем экспорта 2023":      "150",
	})

	inv := dependentsOf(rec, "investment-export")
	if len(inv) != 2 {
		t.Fatalf("ожидалось 2 записи, получено %d", len(inv))
	}
	if inv[0]["year"] != 2022 || inv[0]["moscow_investments"] != 300.0 {
		t.Errorf("2022: %v", inv[0])
	}
	if inv[1]["year"] != 2023 || inv[1]["export_volume"] != 150.0 {
		t.Errorf("2023: %v", inv[1])
	}
}

func TestAssembleSupportBooleans(t *testing.T) {
	a := NewAssembler()

	rec, _ := a.Assemble(RawRecord{
		"ИНН":                           "1234567890",
		"Наименование организации":      "ООО Ромашка",
		"Системообразующее предприятие": "Да",
		"Статус МСП":                    "Малое предприятие",
	})

	sup := dependentsOf(rec, "support")[0]
	if sup["system_forming_enterprise"] != true {
		t.Errorf("system_forming_enterprise = %v", sup["system_forming_enterprise"])
	}
	if sup["moscow_support_received"] != nil {
		t.Errorf("moscow_support_received = %v, ожидался nil", sup["moscow_support_received"])
	}
	if sup["sme_status"] != "Малое предприятие" {
		t.Errorf("sme_status = %v", sup["sme_status"])
	}
}
