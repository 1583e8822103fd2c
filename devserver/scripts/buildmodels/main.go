// Regenerates gorm models from a MySQL-backed fixture database. Only
// needed when running the fixture against MySQL and the schema drifted;
// the sqlite default migrates itself from the hand-written models.
package main

import (
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gen"
	"gorm.io/gorm"
)

func main() {
	dsn := os.Getenv("DSN")
	if dsn == "" {
		dsn = "root:development@tcp(127.0.0.1:3306)/gastrocore?parseTime=true"
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:      "../../models",
		ModelPkgPath: "models",                                                           // avoid helper functions
		Mode:         gen.WithoutContext | gen.WithDefaultQuery | gen.WithQueryInterface, // generate mode
	})

	g.WithDataTypeMap(map[string]func(gorm.ColumnType) (dataType string){
		"time": func(gorm.ColumnType) string {
			return "string"
		},
		"decimal": func(gorm.ColumnType) string {
			return "float64"
		},
	})

	gormdb, err := gorm.Open(mysql.Open(dsn))
	if err != nil {
		log.Fatalf("connecting to %s: %v", dsn, err)
	}
	g.UseDB(gormdb)

	g.GenerateAllTable()
	g.ApplyBasic()

	// Generate the code
	g.Execute()
}
