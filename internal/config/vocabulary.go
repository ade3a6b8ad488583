package config

// DefaultVocabulary is the built-in skill list used when the config file
// does not supply one.
func DefaultVocabulary() []string {
	return []string{
		"python", "java", "sql", "t-sql", "pl/sql", "plsql", "shell", "bash",
		"yaml", "c#", "c++", "javascript", "js", "aws", "s3", "glue", "lambda",
		"step functions", "redshift", "ecs", "fargate", "ses", "sns", "eventbridge",
		"secrets manager", "cloudwatch", "rds", "ec2", "etl", "elt", "spark",
		"pyspark", "airflow", "kafka", "ssis", "ssrs", "data pipeline",
		"data warehouse", "glue studio", "sql server", "postgresql", "postgres",
		"mysql", "oracle", "mongodb", "dynamodb", "nosql", "terraform", "docker",
		"kubernetes", "k8s", "ci/cd", "github actions", "git", "jenkins",
		"spring boot", "spring", "hibernate", "flask", "rest api", "restful",
		"pandas", "sqlalchemy", "fastapi", "power bi", "powerbi", "tableau",
		"looker", "quicksight", "json", "parquet", "avro", "csv", "xml",
	}
}
