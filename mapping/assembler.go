package mapping

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dependent один зависимый под-объект организации: вид сущности и поля
// без organization_id (идентификатор проставляется после записи организации).
type Dependent struct {
	Kind   string
	Fields map[string]interface{}
}

// AssembledRecord канонический набор сущностей, собранный из одной сырой записи
type AssembledRecord struct {
	Organization map[string]interface{}
	// Dependents зависимые записи в порядке записи в хранилище
	Dependents []Dependent
}

// ValidationError отсутствие обязательных полей организации.
// Единственная жесткая ошибка сборки: без ИНН и наименования запись
// не обрабатывается вовсе, частичные сущности не создаются.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("отсутствуют обязательные поля организации: %s", strings.Join(e.MissingFields, ", "))
}

// Assembler собирает канонический набор сущностей из сырых записей.
// Не хранит состояния между вызовами; безопасен для параллельной
// обработки независимых записей.
type Assembler struct {
	// now подменяется в тестах; в бою time.Now
	now func() time.Time
}

// NewAssembler создает сборщик записей
func NewAssembler() *Assembler {
	return &Assembler{now: time.Now}
}

// Assemble превращает одну сырую запись в организацию и ее зависимые
// под-записи. Возвращает ValidationError, если не разрешились ИНН или
// наименование; все прочие нечитаемые поля молча вырождаются в nil.
func (a *Assembler) Assemble(record RawRecord) (*AssembledRecord, error) {
	org := a.buildOrganization(record)

	var missing []string
	if org["inn"] == nil {
		missing = append(missing, "inn")
	}
	if org["name"] == nil {
		missing = append(missing, "name")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{MissingFields: missing}
	}

	out := &AssembledRecord{Organization: org}

	appendAll := func(kind string, payloads []map[string]interface{}) {
		for _, p := range payloads {
			out.Dependents = append(out.Dependents, Dependent{Kind: kind, Fields: p})
		}
	}

	// Порядок соответствует порядку записи в хранилище
	appendAll("financial-indicators", a.buildFinancialIndicators(record))
	appendAll("property-land", []map[string]interface{}{a.buildPropertyLand(record)})
	appendAll("addresses", []map[string]interface{}{a.buildAddress(record)})
	appendAll("production", []map[string]interface{}{a.buildProduction(record)})
	appendAll("investment-export", a.buildInvestmentExports(record))
	appendAll("support", []map[string]interface{}{a.buildSupport(record)})
	appendAll("company-sizes", a.buildCompanySizes(record))
	appendAll("industries", []map[string]interface{}{a.buildIndustries(record)})
	appendAll("okveds", a.buildOkveds(record))
	appendAll("taxes", a.buildTaxes(record))
	appendAll("contacts", a.buildContacts(record))

	return out, nil
}

func (a *Assembler) buildOrganization(record RawRecord) map[string]interface{} {
	return map[string]interface{}{
		"inn":                             NormalizeINN(Pick(record, "ИНН")),
		"name":                            Pick(record, "Наименование организации"),
		"full_name":                       Pick(record, "Полное наименование организации"),
		"spark_status":                    Pick(record, "Статус СПАРК"),
		"internal_status":                 Pick(record, "Статус внутренний"),
		"final_status":                    Pick(record, "Статус ИТОГ"),
		"registry_addition_date":          Pick(record, "Дата добавления в реестр"),
		"registration_date":               Pick(record, "Дата регистрации"),
		"manager_name":                    Pick(record, "Руководитель"),
		"website":                         Pick(record, "Сайт"),
		"email":                           Pick(record, "Электронная почта"),
		"general_info":                    Pick(record, "Общие сведения об организации"),
		"head_organization":               Pick(record, "Головная организация", "Головная организация (если есть)"),
		"head_organization_inn":           NormalizeINN(Pick(record, "ИНН головной организации")),
		"head_organization_relation_type": Pick(record, "Тип связи с головной"),
	}
}

func (a *Assembler) buildFinancialIndicators(record RawRecord) []map[string]interface{} {
	revenue := CollectYearData(record, "Выручка предприятия")
	profit := CollectYearData(record, "Чистая прибыль")
	empTotal := CollectYearData(record, "Среднесписочная численность персонала (всего по компании)")
	payrollTotal := CollectYearData(record, "Фонд оплаты труда всех сотрудников организации")

	var out []map[string]interface{}
	for _, y := range UnionYears(revenue, profit, empTotal, payrollTotal) {
		yearNum, ok := parseYear(y)
		if !ok {
			continue
		}
		out = append(out, map[string]interface{}{
			"year":                        yearNum,
			"revenue":                     NormalizeFloat(revenue[y]),
			"net_profit":                  NormalizeFloat(profit[y]),
			"employee_count":              NormalizeInt(empTotal[y]),
			"employee_count_moscow":       nil,
			"payroll_all_employees":       NormalizeFloat(payrollTotal[y]),
			"payroll_moscow_employees":    nil,
			"avg_salary_all_employees":    nil,
			"avg_salary_moscow_employees": nil,
		})
	}
	return out
}

func (a *Assembler) buildTaxes(record RawRecord) []map[string]interface{} {
	moscowTaxes := CollectYearData(record, "Налоги в бюджет Москвы")
	profitTax := CollectYearData(record, "Налог на прибыль")
	propertyTax := CollectYearData(record, "Налог на имущество")
	landTax := CollectYearData(record, "Земельный налог")
	personalIncomeTax := CollectYearData(record, "НДФЛ")
	transportTax := CollectYearData(record, "Транспортный налог")
	otherTaxes := CollectYearData(record, "Прочие налоги")
	exciseTaxes := CollectYearData(record, "Акцизы")

	var out []map[string]interface{}
	for _, y := range UnionYears(moscowTaxes, profitTax, propertyTax, landTax, personalIncomeTax, transportTax, otherTaxes, exciseTaxes) {
		yearNum, ok := parseYear(y)
		if !ok {
			continue
		}
		out = append(out, map[string]interface{}{
			"year":                yearNum,
			"moscow_taxes":        NormalizeFloat(moscowTaxes[y]),
			"profit_tax":          NormalizeFloat(profitTax[y]),
			"property_tax":        NormalizeFloat(propertyTax[y]),
			"land_tax":            NormalizeFloat(landTax[y]),
			"personal_income_tax": NormalizeFloat(personalIncomeTax[y]),
			"transport_tax":       NormalizeFloat(transportTax[y]),
			"other_taxes":         NormalizeFloat(otherTaxes[y]),
			"excise_taxes":        NormalizeFloat(exciseTaxes[y]),
		})
	}
	return out
}

func (a *Assembler) buildInvestmentExports(record RawRecord) []map[string]interface{} {
	invest := CollectYearData(record, "Объем инвестиций Москвы")
	if len(invest) == 0 {
		invest = CollectYearData(record, "Инвестиции Москвы")
	}
	export := CollectYearData(record, "Объем экспорта")
	if len(export) == 0 {
		export = CollectYearData(record, "Экспорт, млн")
	}

	var out []map[string]interface{}
	for _, y := range UnionYears(invest, export) {
		yearNum, ok := parseYear(y)
		if !ok {
			continue
		}
		out = append(out, map[string]interface{}{
			"year":               yearNum,
			"moscow_investments": NormalizeFloat(invest[y]),
			"export_volume":      NormalizeFloat(export[y]),
		})
	}
	return out
}

func (a *Assembler) buildCompanySizes(record RawRecord) []map[string]interface{} {
	sizeFinal := CollectYearData(record, "Размер предприятия (итог)")
	sizeByEmployees := CollectYearData(record, "Размер предприятия (по численности)")
	sizeByRevenue := CollectYearData(record, "Размер предприятия (по выручке)")

	years := UnionYears(sizeFinal, sizeByEmployees, sizeByRevenue)

	// Безгодовой источник: единственная запись с текущим календарным годом
	if len(years) == 0 && Pick(record, "Размер предприятия (итог)") != nil {
		years = []string{strconv.Itoa(a.now().Year())}
	}

	var out []map[string]interface{}
	for _, y := range years {
		yearNum, ok := parseYear(y)
		if !ok {
			continue
		}
		final := NormalizeScalar(sizeFinal[y])
		if final == nil {
			final = Pick(record, "Размер предприятия (итог)")
		}
		out = append(out, map[string]interface{}{
			"year":              yearNum,
			"size_final":        final,
			"size_by_employees": NormalizeScalar(sizeByEmployees[y]),
			"size_by_revenue":   NormalizeScalar(sizeByRevenue[y]),
		})
	}
	return out
}

func (a *Assembler) buildPropertyLand(record RawRecord) map[string]interface{} {
	section := nestedSection(record, "Имущественно-земельный комплекс")
	return map[string]interface{}{
		"land_cadastral_number":     pickNested(section, record, "Кадастровый номер ЗУ", "Кадастровый номер ЗУ"),
		"land_area":                 NormalizeFloat(pickNested(section, record, "Площадь ЗУ (га)", "Площадь ЗУ", "Площадь ЗУ (га)")),
		"land_use_type":             pickNested(section, record, "Вид разрешенного использования ЗУ", "Вид разрешенного использования ЗУ"),
		"land_ownership_type":       pickNested(section, record, "Вид собственности ЗУ", "Вид собственности ЗУ"),
		"land_owner":                pickNested(section, record, "Собственник ЗУ", "Собственник ЗУ"),
		"building_cadastral_number": pickNested(section, record, "Кадастровый номер ОКСа", "Кадастровый номер ОКСа"),
		"building_area":             NormalizeFloat(pickNested(section, record, "Площадь ОКСов (кв.м)", "Площадь ОКСов", "Площадь ОКСов (кв.м)")),
		"building_use_type":         pickNested(section, record, "Вид использования ОКСов", "Вид использования ОКСов"),
		"building_type_purpose":     pickNested(section, record, "Тип/назначение ОКСов", "Тип/назначение ОКСов"),
		"building_ownership_type":   pickNested(section, record, "Вид собственности ОКСов", "Вид собственности ОКСов"),
		"building_owner":            pickNested(section, record, "Собственник ОКСов", "Собственник ОКСов"),
		"production_area":           NormalizeFloat(pickNested(section, record, "Производственная площадь", "Производственная площадь")),
	}
}

func (a *Assembler) buildAddress(record RawRecord) map[string]interface{} {
	coords := nestedSection(record, "Координаты")
	return map[string]interface{}{
		"address_type": nil,
		"full_address": Pick(record, "Юридический адрес", "Адрес производства", "Адрес дополнительной площадки"),
		"latitude":     NormalizeFloat(pickNested(coords, record, "Широта", "Координаты (широта)")),
		"longitude":    NormalizeFloat(pickNested(coords, record, "Долгота", "Координаты (долгота)")),
		"district":     pickNested(coords, record, "Округ", "Округ"),
		"area":         pickNested(coords, record, "Район", "Район"),
	}
}

func (a *Assembler) buildProduction(record RawRecord) map[string]interface{} {
	section := nestedSection(record, "Производимая продукция")

	codesRaw := pickNested(section, record, "Коды ОКПД 2", "Перечень производимой продукции по кодам ОКПД 2")
	countriesRaw := pickNested(section, record, "Перечень государств", "Перечень государств куда экспортируется продукция")

	return map[string]interface{}{
		"year":                            a.inferProductionYear(record),
		"manufactured_products":           Pick(record, "Производимая продукция"),
		"standardized_products":           Pick(record, "Стандартизированная продукция"),
		"product_names":                   pickNested(section, record, "Название", "Название (виды производимой продукции)"),
		"okpd2_products":                  JoinList(SplitList(codesRaw)),
		"product_types_segments":          Pick(record, "Сегменты/типы продукции"),
		"product_catalog":                 Pick(record, "Каталог продукции (URL)", "Каталог продукции"),
		"government_order":                NormalizeBool(pickNested(section, record, "Наличие госзаказа", "Наличие госзаказа")),
		"production_capacity_utilization": Pick(record, "Загрузка мощностей, %", "Уровень загрузки производственных мощностей"),
		"export_supplies":                 NormalizeBool(pickNested(section, record, "Наличие поставок продукции на экспорт", "Наличие поставок продукции на экспорт")),
		"export_volume_previous_year":     NormalizeFloat(pickNested(section, record, "Объем экспорта (млн руб.)", "Объем экспорта (млн.руб.) за предыдущий календарный год")),
		"export_countries":                JoinList(SplitList(countriesRaw)),
		"tn_ved_code":                     Pick(record, "Код ТН ВЭД", "Код ТН ВЭД ЕАЭС"),
	}
}

// inferProductionYear год для записи о продукции: максимальный год
// из ряда выручки, иначе текущий календарный
func (a *Assembler) inferProductionYear(record RawRecord) int {
	revenue := CollectYearData(record, "Выручка предприятия")
	best := 0
	for y := range revenue {
		if n, ok := parseYear(y); ok && n > best {
			best = n
		}
	}
	if best == 0 {
		return a.now().Year()
	}
	return best
}

func (a *Assembler) buildSupport(record RawRecord) map[string]interface{} {
	return map[string]interface{}{
		"support_data":              Pick(record, "Поддержка (описание)", "Поддержка/меры"),
		"special_status":            Pick(record, "Спецстатус", "Специальный статус"),
		"platform_final":            Pick(record, "Площадка итог"),
		"moscow_support_received":   NormalizeBool(Pick(record, "Поддержка Москвы получена", "Получали поддержку от Москвы")),
		"system_forming_enterprise": NormalizeBool(Pick(record, "Системообразующее предприятие")),
		"sme_status":                Pick(record, "Статус МСП"),
	}
}

func (a *Assembler) buildIndustries(record RawRecord) map[string]interface{} {
	return map[string]interface{}{
		"main_industry":          Pick(record, "Основная отрасль"),
		"main_subindustry":       Pick(record, "Подотрасль (Основная)"),
		"additional_industry":    Pick(record, "Дополнительная отрасль"),
		"additional_subindustry": Pick(record, "Подотрасль (Дополнительная)"),
		"industry_presentations": Pick(record, "Презентации отрасли", "Ссылки/презентации отрасли"),
		"industry_by_spark":      Pick(record, "Отрасль по СПАРК", "Основной ОКВЭД (СПАРК)"),
	}
}

func (a *Assembler) buildOkveds(record RawRecord) []map[string]interface{} {
	var out []map[string]interface{}

	mainCode := Pick(record, "Основной ОКВЭД (СПАРК)")
	mainDesc := Pick(record, "Вид деятельности по основному ОКВЭД (СПАРК)")
	if mainCode != nil || mainDesc != nil {
		out = append(out, map[string]interface{}{
			"okved_type":  "main_spark",
			"code":        mainCode,
			"description": mainDesc,
		})
	}

	prodCode := Pick(record, "Производственный ОКВЭД")
	prodDesc := Pick(record, "Вид деятельности по производственному ОКВЭД")
	if prodCode != nil || prodDesc != nil {
		out = append(out, map[string]interface{}{
			"okved_type":  "production",
			"code":        prodCode,
			"description": prodDesc,
		})
	}
	return out
}

func (a *Assembler) buildContacts(record RawRecord) []map[string]interface{} {
	name := Pick(record, "Контакт сотрудника организации", "Контактное лицо", "Руководитель")
	phone := Pick(record, "Номер телефона", "Телефон")
	email := Pick(record, "Электронная почта", "Почта руководства", "Email")
	if name == nil && phone == nil && email == nil {
		return nil
	}

	contactType := Pick(record, "Тип контакта")
	if contactType == nil {
		contactType = "general"
	}
	return []map[string]interface{}{{
		"contact_type":     contactType,
		"name":             name,
		"phone":            phone,
		"email":            email,
		"management_email": Pick(record, "Почта руководства"),
	}}
}

// parseYear год всегда положительное целое; мусорные ключи отбрасываются
func parseYear(y string) (int, bool) {
	n, err := strconv.Atoi(y)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
