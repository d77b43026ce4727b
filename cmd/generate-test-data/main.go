// Утилита генерации тестовой выгрузки реестра в Excel.
// Создает файл в формате исходных выгрузок: метки колонок на русском,
// годовые показатели в колонках с годом в конце метки.
//
// Использование:
//
//	generate-test-data [-count 100] [-out testdata.xlsx]
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/xuri/excelize/v2"
)

var legalForms = []string{"ООО", "АО", "ПАО", "ЗАО", "ИП"}

var companyTypes = []string{
	"Машиностроительный завод", "Приборостроение", "Металлообработка",
	"Химический комбинат", "Пищевое производство", "Деревообработка",
	"Электротехника", "Станкостроение",
}

var districts = []string{
	"Центральный", "Северный", "Южный", "Западный", "Восточный",
}

var companySizes = []string{
	"Микропредприятие", "Малое предприятие", "Среднее предприятие", "Крупное предприятие",
}

var years = []int{2021, 2022, 2023}

func generateCompanyName() string {
	return fmt.Sprintf("%s %s %d",
		gofakeit.RandomString(legalForms),
		gofakeit.RandomString(companyTypes),
		gofakeit.Number(1, 999))
}

func generateINN() string {
	if gofakeit.Bool() {
		// ИНН юридического лица
		return gofakeit.Numerify("##########")
	}
	// ИНН индивидуального предпринимателя
	return gofakeit.Numerify("############")
}

func headers() []string {
	cols := []string{
		"ИНН",
		"Наименование организации",
		"Муниципальное образование",
		"Юридический адрес",
		"Размер предприятия (итог)",
		"Телефон",
		"Адрес электронной почты",
		"Основной вид деятельности (ОКВЭД)",
		"Отрасль",
	}
	for _, year := range years {
		cols = append(cols,
			fmt.Sprintf("Выручка предприятия, тыс. руб. %d", year),
			fmt.Sprintf("Среднесписочная численность работников, чел. %d", year),
			fmt.Sprintf("Налоговые платежи во все уровни бюджета, тыс. руб. %d", year),
		)
	}
	return cols
}

func generateRow() []interface{} {
	row := []interface{}{
		generateINN(),
		generateCompanyName(),
		gofakeit.RandomString(districts),
		fmt.Sprintf("г. %s, ул. %s, д. %d",
			gofakeit.City(), gofakeit.StreetName(), gofakeit.Number(1, 150)),
		gofakeit.RandomString(companySizes),
		gofakeit.Numerify("+7 (###) ###-##-##"),
		gofakeit.Email(),
		fmt.Sprintf("%d.%d", gofakeit.Number(10, 33), gofakeit.Number(1, 99)),
		gofakeit.RandomString(companyTypes),
	}
	for range years {
		row = append(row,
			fmt.Sprintf("%.1f", gofakeit.Float64Range(1000, 5000000)),
			gofakeit.Number(5, 3000),
			fmt.Sprintf("%.1f", gofakeit.Float64Range(100, 500000)),
		)
	}
	return row
}

func main() {
	count := flag.Int("count", 100, "количество записей")
	out := flag.String("out", "testdata.xlsx", "путь к выходному файлу")
	seed := flag.Int64("seed", 0, "seed генератора (0 — детерминированный набор)")
	flag.Parse()

	gofakeit.Seed(*seed)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	cols := headers()
	if err := f.SetSheetRow(sheet, "A1", &cols); err != nil {
		log.Fatalf("Ошибка записи меток колонок: %v", err)
	}

	for i := 0; i < *count; i++ {
		row := generateRow()
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			log.Fatalf("Ошибка адресации строки %d: %v", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			log.Fatalf("Ошибка записи строки %d: %v", i+2, err)
		}
	}

	if err := f.SaveAs(*out); err != nil {
		log.Fatalf("Ошибка сохранения файла %s: %v", *out, err)
	}

	log.Printf("Сгенерировано %d записей: %s", *count, *out)
}
